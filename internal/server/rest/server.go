// Package rest is the HTTP boundary of the book shelf server, built on Fiber.
package rest

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	Me(ctx context.Context, id models.Identity) (*models.User, error)
}

type BookService interface {
	List(ctx context.Context, id models.Identity) ([]models.Book, error)
	Create(ctx context.Context, id models.Identity, in models.BookInput) (*models.Book, error)
	Get(ctx context.Context, id models.Identity, bookID string) (*models.Book, error)
	Update(ctx context.Context, id models.Identity, bookID string, patch models.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, id models.Identity, bookID string) error
}

// Services is installed once the storage connection is up.
type Services struct {
	Auth  AuthService
	Books BookService
}

type Server struct {
	address      string
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       logging.Logger
	services     atomic.Pointer[Services]
	app          *fiber.App
}

func NewServer(address string, readTimeout, writeTimeout time.Duration, l logging.Logger) *Server {
	s := &Server{
		address:      address,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		logger:       l.With("module", "http_server"),
	}
	s.app = s.newApp()
	return s
}

// SetServices makes the API available. Until it is called every API route
// answers 503.
func (s *Server) SetServices(svc *Services) {
	s.services.Store(svc)
}

// App exposes the underlying Fiber application, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bookshelf",
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		ErrorHandler: s.errorHandler,
	})

	app.Use(s.accessLog)
	app.Use(recoverer.New())
	app.Use(cors.New())

	app.Get("/api/test", s.handleTest)

	api := app.Group("/api", s.requireServices)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)
	authGroup.Get("/me", s.requireAuth, s.handleMe)

	booksGroup := api.Group("/books", s.requireAuth)
	booksGroup.Get("/", s.handleListBooks)
	booksGroup.Post("/", s.handleCreateBook)
	booksGroup.Get("/:id", s.handleGetBook)
	booksGroup.Put("/:id", s.handleUpdateBook)
	booksGroup.Delete("/:id", s.handleDeleteBook)

	app.Use(func(c fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Route not found")
	})

	return app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
		errCh <- s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// errorHandler turns errors escaping the handlers, recovered panics
// included, into the JSON envelope.
func (s *Server) errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return fail(c, fe.Code, fe.Message)
	}
	s.logger.Error(c.Context(), "unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return fail(c, fiber.StatusInternalServerError, "Something went wrong!")
}
