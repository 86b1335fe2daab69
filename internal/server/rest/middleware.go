package rest

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

type ctxKey string

const (
	servicesKey ctxKey = "services"
	identityKey ctxKey = "identity"
)

// accessLog writes one line per request once the response is known.
func (s *Server) accessLog(c fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info(c.Context(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
	)
	return nil
}

// requireServices answers 503 while the storage connection is still being
// established.
func (s *Server) requireServices(c fiber.Ctx) error {
	svc := s.services.Load()
	if svc == nil {
		return fail(c, fiber.StatusServiceUnavailable, msgUnavailable)
	}
	c.Locals(servicesKey, svc)
	return c.Next()
}

// requireAuth resolves the session token to an identity. Failing requests
// never reach a handler and so never touch storage.
func (s *Server) requireAuth(c fiber.Ctx) error {
	svc := services(c)

	id, err := svc.Auth.Authenticate(c.Context(), extractToken(c))
	if err != nil {
		return s.failWith(c, err, msgUserNotFound)
	}

	c.Locals(identityKey, id)
	return c.Next()
}

// extractToken reads the Authorization bearer token and falls back to the
// auth cookie.
func extractToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, common.BearerPrefix) {
		return strings.TrimSpace(header[len(common.BearerPrefix):])
	}
	return c.Cookies(common.AuthCookieName)
}

func services(c fiber.Ctx) *Services {
	svc, _ := c.Locals(servicesKey).(*Services)
	return svc
}

func identity(c fiber.Ctx) models.Identity {
	id, _ := c.Locals(identityKey).(models.Identity)
	return id
}
