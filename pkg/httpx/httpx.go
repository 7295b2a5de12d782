// Package httpx holds fiber glue shared by every API package.
package httpx

import (
	"errors"
	"strconv"

	"github.com/Abraxas-365/devjobs/pkg/errx"
	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/Abraxas-365/devjobs/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var e *errx.Error
	if errors.As(err, &e) {
		if e.Type == errx.TypeInternal {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// Pagination reads the zero-based "page" and "size" query params.
func Pagination(c *fiber.Ctx) kernel.PaginationOptions {
	size := c.QueryInt("size", 0)
	if size == 0 {
		size = c.QueryInt("page_size", kernel.DefaultPageSize)
	}
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 0),
		PageSize: size,
	}.Normalize()
}

// OptionalInt parses an integer query param. Absent or empty yields nil.
func OptionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryAll returns every value of a repeated query param.
func QueryAll(c *fiber.Ctx, key string) []string {
	values := c.Context().QueryArgs().PeekMulti(key)
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
