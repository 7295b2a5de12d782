package jobcategoryapi

import (
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategorysrv"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job categories
type Handlers struct {
	service *jobcategorysrv.CategoryService
}

func NewHandlers(service *jobcategorysrv.CategoryService) *Handlers {
	return &Handlers{service: service}
}

// ListCategories
// GET /api/jobcategories
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateCategory
// POST /api/jobcategories
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req jobcategory.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jobcategory.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	category, err := h.service.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory
// DELETE /api/jobcategories/:id
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jobcategory.ErrInvalidRequest().WithDetail("id", c.Params("id"))
	}

	if err := h.service.Delete(c.UserContext(), principal, kernel.JobCategoryID(id)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers job category routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobcategories")

	api.Get("/", handlers.ListCategories)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.CreateCategory,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.DeleteCategory,
	)
}
