package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/devjobs/internal/config"
	"github.com/Abraxas-365/devjobs/jobboard/application/applicationapi"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark/bookmarkapi"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategoryapi"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting/jobpostingapi"
	"github.com/Abraxas-365/devjobs/pkg/httpx"
	"github.com/Abraxas-365/devjobs/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func runServer(cfg config.Config) error {
	logx.Info("Starting devjobs API server...")

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	app := newApp(container)

	errCh := make(chan error, 1)
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logx.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("Server exited")
	return nil
}

func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "devjobs API",
		DisableStartupMessage: true,
		ErrorHandler:          httpx.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: container.Config.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		deps := container.Health(c.UserContext())
		status := "ok"
		for _, up := range deps {
			if !up {
				status = "degraded"
			}
		}
		body := fiber.Map{"status": status, "storage": container.Config.Storage.Driver}
		for name, up := range deps {
			body[name] = up
		}
		return c.JSON(body)
	})

	// /api/jobpostings
	jobpostingapi.RegisterRoutes(app, container.PostingHandlers, container.AuthMiddleware)

	// /api/applications and /api/jobpostings/:id/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// /api/jobcategories
	jobcategoryapi.RegisterRoutes(app, container.CategoryHandlers, container.AuthMiddleware)

	// /api/bookmarks
	bookmarkapi.RegisterRoutes(app, container.BookmarkHandlers, container.AuthMiddleware)

	return app
}
