package bookmarkapi

import (
	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark/bookmarksrv"
	"github.com/Abraxas-365/devjobs/pkg/httpx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for bookmark operations
type Handlers struct {
	service *bookmarksrv.BookmarkService
}

func NewHandlers(service *bookmarksrv.BookmarkService) *Handlers {
	return &Handlers{service: service}
}

// ToggleBookmark adds or removes a bookmark on a posting
// POST /api/bookmarks/toggle/:jobPostingId
func (h *Handlers) ToggleBookmark(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := postingID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Toggle(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CheckBookmark
// GET /api/bookmarks/check/:jobPostingId
func (h *Handlers) CheckBookmark(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}
	id, err := postingID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.IsBookmarked(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListMyBookmarks pages through the requester's bookmarks, newest first
// GET /api/bookmarks/my
func (h *Handlers) ListMyBookmarks(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	page, err := h.service.ListMine(c.UserContext(), principal, httpx.Pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ListBookmarkedIDs
// GET /api/bookmarks/ids
func (h *Handlers) ListBookmarkedIDs(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	ids, err := h.service.BookmarkedIDs(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(ids)
}

// CountBookmarks
// GET /api/bookmarks/count
func (h *Handlers) CountBookmarks(c *fiber.Ctx) error {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	resp, err := h.service.Count(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func postingID(c *fiber.Ctx) (kernel.JobPostingID, error) {
	id, err := c.ParamsInt("jobPostingId")
	if err != nil || id <= 0 {
		return 0, bookmark.ErrInvalidRequest().WithDetail("job_posting_id", c.Params("jobPostingId"))
	}
	return kernel.JobPostingID(id), nil
}

// RegisterRoutes registers all bookmark routes. Every route is for individuals.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/bookmarks",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleIndividual),
	)

	api.Post("/toggle/:jobPostingId<int>", handlers.ToggleBookmark)
	api.Get("/check/:jobPostingId<int>", handlers.CheckBookmark)
	api.Get("/my", handlers.ListMyBookmarks)
	api.Get("/ids", handlers.ListBookmarkedIDs)
	api.Get("/count", handlers.CountBookmarks)
}
