package applicationapi

import (
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/application/applicationsrv"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{service: service}
}

// CreateApplication applies the requesting individual to a posting
// POST /api/applications
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.JobPostingID <= 0 {
		return application.ErrInvalidRequest().WithDetail("jobPostingId", "missing or invalid")
	}

	resp, err := h.service.Create(c.UserContext(), principal, kernel.JobPostingID(req.JobPostingID))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CancelApplication withdraws the requester's own application
// DELETE /api/applications/:id
func (h *Handlers) CancelApplication(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := applicationID(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.UserContext(), id, principal); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMyApplications lists the requester's applications, newest first
// GET /api/applications/my
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	views, err := h.service.ListForApplicant(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(views)
}

// ListPostingApplicants lists applications to a posting the requester owns
// GET /api/jobpostings/:id/applications
func (h *Handlers) ListPostingApplicants(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return application.ErrInvalidRequest().WithDetail("job_posting_id", c.Params("id"))
	}

	views, err := h.service.ListForPosting(c.UserContext(), kernel.JobPostingID(id), principal)
	if err != nil {
		return err
	}
	return c.JSON(views)
}

// UpdateApplicationStatus
// PATCH /api/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := applicationID(c)
	if err != nil {
		return err
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpdateStatus(c.UserContext(), id, req.Status, principal)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func applicationID(c *fiber.Ctx) (kernel.ApplicationID, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, application.ErrInvalidRequest().WithDetail("application_id", c.Params("id"))
	}
	return kernel.ApplicationID(id), nil
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	// Applicant routes
	api.Post("/",
		authMiddleware.RequireRole(auth.RoleIndividual),
		handlers.CreateApplication,
	)

	api.Get("/my",
		authMiddleware.RequireRole(auth.RoleIndividual),
		handlers.ListMyApplications,
	)

	api.Delete("/:id<int>",
		authMiddleware.RequireRole(auth.RoleIndividual),
		handlers.CancelApplication,
	)

	// Company routes
	api.Patch("/:id<int>/status",
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UpdateApplicationStatus,
	)

	app.Get("/api/jobpostings/:id<int>/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.ListPostingApplicants,
	)
}
