package presenters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	utils.InitValidator()
	verr := utils.Validate.Struct(struct {
		Title string `json:"title" validate:"required"`
	}{})

	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("amount", "must be greater than zero"), fiber.StatusBadRequest},
		{verr, fiber.StatusBadRequest},
		{domain.ErrCrisisPostNotApproved, fiber.StatusBadRequest},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrForbidden), fiber.StatusForbidden},
		{domain.ErrCrisisPostNotFound, fiber.StatusNotFound},
		{domain.ErrAlreadyApplied, fiber.StatusConflict},
		{domain.ErrStatusChanged, fiber.StatusConflict},
		{fiber.ErrRequestEntityTooLarge, fiber.StatusRequestEntityTooLarge},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func serve(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestHandleErrorHidesForbiddenReason(t *testing.T) {
	code, body := serve(t, func(c *fiber.Ctx) error {
		return HandleError(c, "failed to edit", fmt.Errorf("%w: actor is not the owner", domain.ErrForbidden))
	})

	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "not permitted", body["message"])
	assert.Equal(t, "not permitted", body["error"])
}

func TestHandleErrorCarriesFields(t *testing.T) {
	code, body := serve(t, func(c *fiber.Ctx) error {
		return HandleError(c, "failed to donate", domain.NewValidationError("amount", "must be greater than zero"))
	})

	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "failed to donate", body["message"])
	assert.Equal(t, map[string]any{"amount": "must be greater than zero"}, body["fields"])
}

func TestHandleErrorMasksInternalErrors(t *testing.T) {
	code, body := serve(t, func(c *fiber.Ctx) error {
		return HandleError(c, "failed to list", errors.New("pq: connection refused"))
	})

	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, domain.MessageFailedProcessRequest, body["error"])
}

func TestSuccessResponse(t *testing.T) {
	code, body := serve(t, func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"id": "1"}, fiber.StatusCreated, "created")
	})

	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
}
