package rest

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

// envelope is the body of every response. Exactly one payload field is set
// on success; message carries the error text on failure.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Book    *models.Book `json:"book,omitempty"`
}

// bookList always carries the books key, even for an empty shelf.
type bookList struct {
	Success bool          `json:"success"`
	Books   []models.Book `json:"books"`
}

func respond(c fiber.Ctx, status int, body envelope) error {
	body.Success = status < fiber.StatusBadRequest
	return c.Status(status).JSON(body)
}

func fail(c fiber.Ctx, status int, message string) error {
	return respond(c, status, envelope{Message: message})
}

const (
	msgServerError      = "Server error"
	msgBookNotFound     = "Book not found"
	msgUserNotFound     = "User not found"
	msgInvalidBody      = "Invalid request body"
	msgUnavailable      = "Service temporarily unavailable"
	msgNoToken          = "No token, authorization denied"
	msgInvalidToken     = "Token is not valid"
	msgExpiredToken     = "Token has expired"
	msgUserExists       = "User already exists"
	msgBadCredentials   = "Invalid credentials"
	msgPasswordMismatch = "Passwords do not match"
)

// statusFor maps a service error to the response status and message.
// notFound is the message used for common.ErrorNotFound on this route.
func statusFor(err error, notFound string) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusBadRequest, msgBadCredentials
	case errors.Is(err, common.ErrMissingToken):
		return fiber.StatusUnauthorized, msgNoToken
	case errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized, msgExpiredToken
	case errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, notFound
	}
	return fiber.StatusInternalServerError, msgServerError
}

func (s *Server) failWith(c fiber.Ctx, err error, notFound string) error {
	status, msg := statusFor(err, notFound)
	if status == fiber.StatusInternalServerError {
		s.logger.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return fail(c, status, msg)
}
