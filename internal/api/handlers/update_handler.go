package handlers

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/presenters"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/update"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UpdateHandler interface {
		CreateUpdate(c *fiber.Ctx) error
		GetUpdatesForPost(c *fiber.Ctx) error
		GetMyUpdates(c *fiber.Ctx) error
		GetUpdateDetails(c *fiber.Ctx) error
		EditUpdate(c *fiber.Ctx) error
		DeleteUpdate(c *fiber.Ctx) error

		CreateComment(c *fiber.Ctx) error
		GetComments(c *fiber.Ctx) error
		GetMyComments(c *fiber.Ctx) error
		EditComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	updateHandler struct {
		updateService update.UpdateService
		validator     *validator.Validate
	}
)

func NewUpdateHandler(updateService update.UpdateService, validator *validator.Validate) UpdateHandler {
	return &updateHandler{
		updateService: updateService,
		validator:     validator,
	}
}

func (h *updateHandler) CreateUpdate(c *fiber.Ctx) error {
	req := new(domain.CreateUpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = formFile(c, "image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateUpdate, err)
	}

	res, err := h.updateService.CreateUpdate(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateUpdate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateUpdate)
}

func (h *updateHandler) GetUpdatesForPost(c *fiber.Ctx) error {
	res, err := h.updateService.GetUpdatesForPost(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUpdates, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUpdates)
}

func (h *updateHandler) GetMyUpdates(c *fiber.Ctx) error {
	res, err := h.updateService.GetMyUpdates(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUpdates, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUpdates)
}

func (h *updateHandler) GetUpdateDetails(c *fiber.Ctx) error {
	res, err := h.updateService.GetUpdateByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetUpdates, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUpdate)
}

func (h *updateHandler) EditUpdate(c *fiber.Ctx) error {
	req := new(domain.EditUpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = formFile(c, "image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditUpdate, err)
	}

	res, err := h.updateService.EditUpdate(c.Context(), middleware.ActorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedEditUpdate, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditUpdate)
}

func (h *updateHandler) DeleteUpdate(c *fiber.Ctx) error {
	if err := h.updateService.DeleteUpdate(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteUpdate, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUpdate)
}

func (h *updateHandler) CreateComment(c *fiber.Ctx) error {
	req := new(domain.CreateCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateComment, err)
	}

	res, err := h.updateService.CreateComment(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateComment)
}

func (h *updateHandler) GetComments(c *fiber.Ctx) error {
	res, err := h.updateService.GetCommentsForUpdate(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *updateHandler) GetMyComments(c *fiber.Ctx) error {
	res, err := h.updateService.GetMyComments(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *updateHandler) EditComment(c *fiber.Ctx) error {
	req := new(domain.EditCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditComment, err)
	}

	res, err := h.updateService.EditComment(c.Context(), middleware.ActorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedEditComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditComment)
}

func (h *updateHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.updateService.DeleteComment(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}
