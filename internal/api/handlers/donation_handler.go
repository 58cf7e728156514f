package handlers

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/api/presenters"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/middleware"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/donation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateMoneyDonation(c *fiber.Ctx) error
		CreateGoodsDonation(c *fiber.Ctx) error
		GetMoneyDonations(c *fiber.Ctx) error
		GetGoodsDonations(c *fiber.Ctx) error
		GetDonationSummary(c *fiber.Ctx) error
		GetMyDonations(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateMoneyDonation(c *fiber.Ctx) error {
	req := new(domain.MoneyDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	res, err := h.donationService.CreateMoneyDonation(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) CreateGoodsDonation(c *fiber.Ctx) error {
	req := new(domain.GoodsDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	res, err := h.donationService.CreateGoodsDonation(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetMoneyDonations(c *fiber.Ctx) error {
	res, err := h.donationService.GetMoneyDonations(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetGoodsDonations(c *fiber.Ctx) error {
	res, err := h.donationService.GetGoodsDonations(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationSummary(c *fiber.Ctx) error {
	res, err := h.donationService.GetDonationSummary(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonationSummary)
}

func (h *donationHandler) GetMyDonations(c *fiber.Ctx) error {
	res, err := h.donationService.GetMyDonations(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}
