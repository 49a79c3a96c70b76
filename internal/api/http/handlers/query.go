package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func queryString(c *fiber.Ctx, key string) *string {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	return &val
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	pageSize := queryInt(c, "page_size", 100)
	if pageSize <= 0 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
