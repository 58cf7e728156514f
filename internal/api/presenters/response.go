package presenters

import (
	"errors"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	Response struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data,omitempty"`
	}

	ErrorBody struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Error   string            `json:"error"`
		Fields  map[string]string `json:"fields,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err with an explicit status code.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{
		Status:  false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
		body.Fields = fieldsOf(err)
	}
	return c.Status(statusCode).JSON(body)
}

// HandleError writes err with the status code its kind maps to.
func HandleError(c *fiber.Ctx, message string, err error) error {
	status := StatusOf(err)
	switch status {
	case fiber.StatusForbidden:
		// never leak why access was denied
		return ErrorResponse(c, status, domain.MessageNotPermitted, domain.ErrForbidden)
	case fiber.StatusInternalServerError:
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, status, message, err)
}

func StatusOf(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func fieldsOf(err error) map[string]string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return utils.FieldErrors(verrs)
	}
	return nil
}
