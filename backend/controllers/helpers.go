package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// decodeJSON fills v from the request body. An empty body leaves v untouched.
func decodeJSON(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, v)
}

// idParam reads a non-negative integer path parameter.
func idParam(c *fiber.Ctx, key string) (uint, bool) {
	id, err := strconv.Atoi(c.Params(key))
	if err != nil || id < 0 {
		return 0, false
	}
	return uint(id), true
}

// parseLimit reads ?limit. Zero means the service default.
func parseLimit(c *fiber.Ctx) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
