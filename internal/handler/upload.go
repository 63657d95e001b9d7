package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"slidequiz/internal/domain"
	"slidequiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// readDocument loads a required multipart file.
func readDocument(c *fiber.Ctx, field string) (domain.Document, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return domain.Document{}, domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	data, err := readFormFile(fh)
	if err != nil {
		return domain.Document{}, domain.NewInvalidInputError(fmt.Sprintf("could not read %s", field))
	}
	return domain.Document{Name: fh.Filename, Data: data}, nil
}

// readOptionalFile returns nil when the field is absent.
func readOptionalFile(c *fiber.Ctx, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	data, err := readFormFile(fh)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("could not read %s", field))
	}
	return data, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// progressLogger reports extraction progress at debug level.
func progressLogger(c *fiber.Ctx, name string) domain.ProgressFunc {
	log := logger.Get().With(zap.String("path", c.Path()), zap.String("document", name))
	return func(progress float64) {
		log.Debug("Extraction progress", zap.Float64("progress", progress))
	}
}

func sendAttachment(c *fiber.Ctx, fileName, mimeType string, data []byte) error {
	c.Attachment(fileName)
	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}
