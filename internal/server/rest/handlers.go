package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

func (s *Server) handleTest(c fiber.Ctx) error {
	return respond(c, fiber.StatusOK, envelope{Message: "Test endpoint working correctly"})
}

type registerRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword *string `json:"confirmPassword"`
}

func (s *Server) handleRegister(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	if req.ConfirmPassword != nil && *req.ConfirmPassword != req.Password {
		return fail(c, fiber.StatusBadRequest, msgPasswordMismatch)
	}

	if _, err := services(c).Auth.Register(c.Context(), req.Name, req.Email, req.Password); err != nil {
		return s.failWith(c, err, msgUserNotFound)
	}

	return respond(c, fiber.StatusCreated, envelope{Message: "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	token, err := services(c).Auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.failWith(c, err, msgUserNotFound)
	}

	return respond(c, fiber.StatusOK, envelope{Token: token})
}

func (s *Server) handleMe(c fiber.Ctx) error {
	u, err := services(c).Auth.Me(c.Context(), identity(c))
	if err != nil {
		return s.failWith(c, err, msgUserNotFound)
	}
	return respond(c, fiber.StatusOK, envelope{User: u})
}

func (s *Server) handleListBooks(c fiber.Ctx) error {
	list, err := services(c).Books.List(c.Context(), identity(c))
	if err != nil {
		return s.failWith(c, err, msgBookNotFound)
	}
	if list == nil {
		list = []models.Book{}
	}
	return c.Status(fiber.StatusOK).JSON(bookList{Success: true, Books: list})
}

func (s *Server) handleCreateBook(c fiber.Ctx) error {
	var in models.BookInput
	if err := c.Bind().JSON(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	b, err := services(c).Books.Create(c.Context(), identity(c), in)
	if err != nil {
		return s.failWith(c, err, msgBookNotFound)
	}
	return respond(c, fiber.StatusCreated, envelope{Book: b})
}

func (s *Server) handleGetBook(c fiber.Ctx) error {
	b, err := services(c).Books.Get(c.Context(), identity(c), c.Params("id"))
	if err != nil {
		return s.failWith(c, err, msgBookNotFound)
	}
	return respond(c, fiber.StatusOK, envelope{Book: b})
}

func (s *Server) handleUpdateBook(c fiber.Ctx) error {
	var patch models.BookPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	b, err := services(c).Books.Update(c.Context(), identity(c), c.Params("id"), patch)
	if err != nil {
		return s.failWith(c, err, msgBookNotFound)
	}
	return respond(c, fiber.StatusOK, envelope{Book: b})
}

func (s *Server) handleDeleteBook(c fiber.Ctx) error {
	if err := services(c).Books.Delete(c.Context(), identity(c), c.Params("id")); err != nil {
		return s.failWith(c, err, msgBookNotFound)
	}
	return respond(c, fiber.StatusOK, envelope{Message: "Book removed"})
}
