package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/therisers/backoffice/internal/services"
)

// formUpload reads one multipart file field into memory. A missing
// field is not an error; it returns (nil, nil).
func formUpload(c *fiber.Ctx, field string) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", field, err)
	}

	return &services.Upload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    fh.Filename,
	}, nil
}
