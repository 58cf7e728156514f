package handlers

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/presenters"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/volunteer"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VolunteerHandler interface {
		Apply(c *fiber.Ctx) error
		GetMyApplications(c *fiber.Ctx) error
		GetApplicationsForPost(c *fiber.Ctx) error
		ApproveApplication(c *fiber.Ctx) error
		RejectApplication(c *fiber.Ctx) error
	}

	volunteerHandler struct {
		volunteerService volunteer.VolunteerService
		validator        *validator.Validate
	}
)

func NewVolunteerHandler(volunteerService volunteer.VolunteerService, validator *validator.Validate) VolunteerHandler {
	return &volunteerHandler{
		volunteerService: volunteerService,
		validator:        validator,
	}
}

func (h *volunteerHandler) Apply(c *fiber.Ctx) error {
	req := new(domain.ApplyVolunteerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApplyVolunteer, err)
	}

	res, err := h.volunteerService.Apply(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedApplyVolunteer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessApplyVolunteer)
}

func (h *volunteerHandler) GetMyApplications(c *fiber.Ctx) error {
	res, err := h.volunteerService.GetMyApplications(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetApplications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetApplications)
}

func (h *volunteerHandler) GetApplicationsForPost(c *fiber.Ctx) error {
	res, err := h.volunteerService.GetApplicationsForPost(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetApplications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetApplications)
}

func (h *volunteerHandler) ApproveApplication(c *fiber.Ctx) error {
	res, err := h.volunteerService.ApproveApplication(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedReviewApplication, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveApplication)
}

func (h *volunteerHandler) RejectApplication(c *fiber.Ctx) error {
	res, err := h.volunteerService.RejectApplication(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedReviewApplication, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectApplication)
}
