package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mrsingh-rishi/bill-diff/comparison"
)

// Comparer is the business logic behind the comparison routes.
type Comparer interface {
	Compare(ctx context.Context, req comparison.Request) (comparison.Result, error)
	CompareAndSpeak(ctx context.Context, req comparison.Request) (comparison.Result, error)
}

type Server struct {
	app       *fiber.App
	comparer  Comparer
	staticDir string
}

// bills can be long; fiber's default 4MB body limit is too tight for two
// full bill texts with tables.
const bodyLimit = 16 * 1024 * 1024

func New(comparer Comparer, staticDir string) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Bill Diff Tool API",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s := &Server{
		app:       app,
		comparer:  comparer,
		staticDir: staticDir,
	}

	app.Use(requestLogger())
	app.Use(recover.New())
	s.routes()
	return s
}

func (s *Server) routes() {
	// Frontend
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui", fiber.StatusTemporaryRedirect)
	})
	s.app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	s.app.Get("/ui", s.ui)
	s.app.Get("/bills.json", s.staticFile("bills.json"))
	s.app.Get("/style.css", s.staticFile("style.css"))
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Backend
	s.app.Post("/compare-bills", s.compareBills)
	s.app.Post("/compare-and-speak", s.compareAndSpeak)
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) ui(c *fiber.Ctx) error {
	path := filepath.Join(s.staticDir, "index.html")
	if !fileExists(path) {
		c.Type("html")
		return c.Status(fiber.StatusNotFound).SendString("<h1>index.html not found</h1>")
	}
	return c.SendFile(path)
}

func (s *Server) staticFile(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := filepath.Join(s.staticDir, name)
		if !fileExists(path) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(path)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
