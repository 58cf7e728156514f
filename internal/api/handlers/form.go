package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// formFile returns the uploaded file under key, or nil for JSON bodies and
// multipart requests without that file.
func formFile(c *fiber.Ctx, key string) *multipart.FileHeader {
	file, err := c.FormFile(key)
	if err != nil {
		return nil
	}
	return file
}
