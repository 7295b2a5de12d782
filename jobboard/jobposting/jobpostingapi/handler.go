package jobpostingapi

import (
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting/jobpostingsrv"
	"github.com/Abraxas-365/devjobs/pkg/httpx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job posting operations
type Handlers struct {
	service *jobpostingsrv.PostingService
}

func NewHandlers(service *jobpostingsrv.PostingService) *Handlers {
	return &Handlers{service: service}
}

// SearchJobPostings searches open postings
// GET /api/jobpostings/search?keyword=&location=&minSalary=&maxSalary=&minExperience=&maxExperience=&categoryId=&page=&size=&sort=field,dir
func (h *Handlers) SearchJobPostings(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return err
	}

	result, err := h.service.Search(
		c.UserContext(),
		criteria,
		jobposting.ParseSort(httpx.QueryAll(c, "sort")),
		httpx.Pagination(c),
	)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func parseCriteria(c *fiber.Ctx) (jobposting.SearchCriteria, error) {
	criteria := jobposting.SearchCriteria{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
	}

	ints := []struct {
		key  string
		dest **int
	}{
		{"minSalary", &criteria.MinSalary},
		{"maxSalary", &criteria.MaxSalary},
		{"minExperience", &criteria.MinExperience},
		{"maxExperience", &criteria.MaxExperience},
	}
	for _, p := range ints {
		v, err := httpx.OptionalInt(c, p.key)
		if err != nil {
			return criteria, jobposting.ErrInvalidRequest().WithDetail(p.key, c.Query(p.key))
		}
		*p.dest = v
	}

	category, err := httpx.OptionalInt(c, "categoryId")
	if err != nil {
		return criteria, jobposting.ErrInvalidRequest().WithDetail("categoryId", c.Query("categoryId"))
	}
	if category != nil {
		id := kernel.JobCategoryID(*category)
		criteria.JobCategoryID = &id
	}

	return criteria, nil
}

// GetJobPosting returns one posting and counts the view
// GET /api/jobpostings/:id
func (h *Handlers) GetJobPosting(c *fiber.Ctx) error {
	id, err := postingID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// CreateJobPosting
// POST /api/jobpostings
func (h *Handlers) CreateJobPosting(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req jobposting.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return jobposting.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	view, err := h.service.Create(c.UserContext(), principal, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateJobPosting
// PATCH /api/jobpostings/:id
func (h *Handlers) UpdateJobPosting(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := postingID(c)
	if err != nil {
		return err
	}

	var req jobposting.UpdatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return jobposting.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	view, err := h.service.Update(c.UserContext(), id, principal, req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// DeleteJobPosting removes a posting with its applications
// DELETE /api/jobpostings/:id
func (h *Handlers) DeleteJobPosting(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := postingID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id, principal); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMyJobPostings lists the requesting company's postings
// GET /api/jobpostings/my
func (h *Handlers) ListMyJobPostings(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	result, err := h.service.ListByCompany(c.UserContext(), principal.UserID, httpx.Pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func postingID(c *fiber.Ctx) (kernel.JobPostingID, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, jobposting.ErrInvalidRequest().WithDetail("id", c.Params("id"))
	}
	return kernel.JobPostingID(id), nil
}

// RegisterRoutes registers job posting routes. The applicants route for a
// posting lives with the application API.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobpostings")

	// Public
	api.Get("/search", handlers.SearchJobPostings)

	api.Get("/my",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.ListMyJobPostings,
	)

	api.Get("/:id<int>", handlers.GetJobPosting)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.CreateJobPosting,
	)

	api.Patch("/:id<int>",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany),
		handlers.UpdateJobPosting,
	)

	api.Delete("/:id<int>",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleCompany, auth.RoleAdmin),
		handlers.DeleteJobPosting,
	)
}
