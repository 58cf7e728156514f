package handlers

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/presenters"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CrisisHandler interface {
		CreatePost(c *fiber.Ctx) error
		GetPosts(c *fiber.Ctx) error
		GetMyPosts(c *fiber.Ctx) error
		GetPostDetails(c *fiber.Ctx) error
		UpdatePost(c *fiber.Ctx) error
		DeletePost(c *fiber.Ctx) error
		ApprovePost(c *fiber.Ctx) error
		RejectPost(c *fiber.Ctx) error
		AddSection(c *fiber.Ctx) error
	}

	crisisHandler struct {
		crisisService crisis.CrisisService
		validator     *validator.Validate
	}
)

func NewCrisisHandler(crisisService crisis.CrisisService, validator *validator.Validate) CrisisHandler {
	return &crisisHandler{
		crisisService: crisisService,
		validator:     validator,
	}
}

func (h *crisisHandler) CreatePost(c *fiber.Ctx) error {
	req := new(domain.CreateCrisisPostRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.BannerImage = formFile(c, "banner_image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCrisisPost, err)
	}

	res, err := h.crisisService.CreatePost(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateCrisisPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCrisisPost)
}

func (h *crisisHandler) GetPosts(c *fiber.Ctx) error {
	req := new(domain.ListCrisisPostsRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.crisisService.GetPosts(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCrisisPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCrisisPosts)
}

func (h *crisisHandler) GetMyPosts(c *fiber.Ctx) error {
	res, err := h.crisisService.GetMyPosts(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCrisisPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCrisisPosts)
}

func (h *crisisHandler) GetPostDetails(c *fiber.Ctx) error {
	res, err := h.crisisService.GetPostByID(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCrisisPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCrisisPost)
}

func (h *crisisHandler) UpdatePost(c *fiber.Ctx) error {
	req := new(domain.UpdateCrisisPostRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.BannerImage = formFile(c, "banner_image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCrisisPost, err)
	}

	res, err := h.crisisService.UpdatePost(c.Context(), middleware.ActorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateCrisisPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCrisisPost)
}

func (h *crisisHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.crisisService.DeletePost(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteCrisisPost, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCrisisPost)
}

func (h *crisisHandler) ApprovePost(c *fiber.Ctx) error {
	res, err := h.crisisService.ApprovePost(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedReviewCrisisPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveCrisisPost)
}

func (h *crisisHandler) RejectPost(c *fiber.Ctx) error {
	res, err := h.crisisService.RejectPost(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedReviewCrisisPost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectCrisisPost)
}

func (h *crisisHandler) AddSection(c *fiber.Ctx) error {
	req := new(domain.CreateSectionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateSection, err)
	}

	res, err := h.crisisService.AddSection(c.Context(), middleware.ActorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateSection, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateSection)
}
