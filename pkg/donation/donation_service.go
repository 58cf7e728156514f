package donation

import (
	"context"
	"strings"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/policy"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// decimal(10,2)
var maxAmount = decimal.New(1, 8)

type (
	DonationService interface {
		CreateMoneyDonation(ctx context.Context, actor domain.Actor, req domain.MoneyDonationRequest) (*domain.MoneyDonation, error)
		CreateGoodsDonation(ctx context.Context, actor domain.Actor, req domain.GoodsDonationRequest) (*domain.GoodsDonation, error)
		GetMoneyDonations(ctx context.Context, postID string) ([]*domain.MoneyDonation, error)
		GetGoodsDonations(ctx context.Context, postID string) ([]*domain.GoodsDonation, error)
		GetDonationSummary(ctx context.Context, postID string) (*domain.DonationSummary, error)
		GetMyDonations(ctx context.Context, actor domain.Actor) (*domain.MyDonations, error)
	}

	donationService struct {
		donationRepository DonationRepository
		crisisRepository   crisis.CrisisRepository
		logger             *logrus.Logger
	}
)

func NewDonationService(donationRepository DonationRepository, crisisRepository crisis.CrisisRepository, logger *logrus.Logger) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		crisisRepository:   crisisRepository,
		logger:             logger,
	}
}

func (s *donationService) CreateMoneyDonation(ctx context.Context, actor domain.Actor, req domain.MoneyDonationRequest) (*domain.MoneyDonation, error) {
	post, err := s.donatablePost(ctx, actor, req.CrisisPostID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "must be greater than zero")
	}
	if req.Amount.Exponent() < -2 && !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, domain.NewValidationError("amount", "must have at most 2 decimal places")
	}
	if req.Amount.GreaterThanOrEqual(maxAmount) {
		return nil, domain.NewValidationError("amount", "is too large")
	}

	donor, err := resolveDonor(actor, req.GuestDonorRequest)
	if err != nil {
		return nil, err
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.DefaultPaymentMethod
	}

	donation := &entities.DonationMoney{
		CrisisPostID:  post.ID,
		Amount:        req.Amount.Round(2),
		PaymentMethod: paymentMethod,
		TransactionID: optional(req.TransactionID),
		Message:       req.Message,
		IsAnonymous:   req.IsAnonymous,
	}
	donation.DonorID, donation.DonorName, donation.DonorEmail, donation.DonorPhone = donorColumns(donor)

	if err := s.donationRepository.CreateMoneyDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"donation_id": donation.ID,
		"post_id":     post.ID,
		"amount":      donation.Amount.String(),
	}).Info("money donation received")

	created, err := s.donationRepository.GetMoneyDonationByID(ctx, donation.ID)
	if err != nil {
		return nil, err
	}
	return toDomainMoney(created), nil
}

func (s *donationService) CreateGoodsDonation(ctx context.Context, actor domain.Actor, req domain.GoodsDonationRequest) (*domain.GoodsDonation, error) {
	post, err := s.donatablePost(ctx, actor, req.CrisisPostID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ItemDescription) == "" {
		return nil, domain.NewValidationError("item_description", "is required")
	}

	donor, err := resolveDonor(actor, req.GuestDonorRequest)
	if err != nil {
		return nil, err
	}

	donation := &entities.DonationGoods{
		CrisisPostID:    post.ID,
		ItemDescription: req.ItemDescription,
		Quantity:        req.Quantity,
		DeliveryMethod:  req.DeliveryMethod,
		Message:         req.Message,
		IsAnonymous:     req.IsAnonymous,
	}
	donation.DonorID, donation.DonorName, donation.DonorEmail, donation.DonorPhone = donorColumns(donor)

	if err := s.donationRepository.CreateGoodsDonation(ctx, donation); err != nil {
		return nil, err
	}

	created, err := s.donationRepository.GetGoodsDonationByID(ctx, donation.ID)
	if err != nil {
		return nil, err
	}
	return toDomainGoods(created), nil
}

// donatablePost loads the target post and checks both gates a donation
// must pass.
func (s *donationService) donatablePost(ctx context.Context, actor domain.Actor, postID string) (*entities.CrisisPost, error) {
	if err := policy.Authorize(actor, policy.Donate, policy.Resource{}); err != nil {
		return nil, err
	}
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	if err := workflow.RequireApprovedPost(domain.Status(post.Status)); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *donationService) GetMoneyDonations(ctx context.Context, postID string) ([]*domain.MoneyDonation, error) {
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepository.GetMoneyDonationsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return toDomainMoneyList(donations), nil
}

func (s *donationService) GetGoodsDonations(ctx context.Context, postID string) ([]*domain.GoodsDonation, error) {
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepository.GetGoodsDonationsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return toDomainGoodsList(donations), nil
}

func (s *donationService) GetDonationSummary(ctx context.Context, postID string) (*domain.DonationSummary, error) {
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}

	money, err := s.donationRepository.GetMoneyDonationsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	goods, err := s.donationRepository.GetGoodsDonationsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.donationRepository.SumMoneyByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &domain.DonationSummary{
		CrisisID:            post.ID.String(),
		CrisisTitle:         post.Title,
		TotalMoney:          total,
		TotalDonorsMoney:    len(money),
		TotalGoodsDonations: len(goods),
		MoneyDonations:      toDomainMoneyList(money),
		GoodsDonations:      toDomainGoodsList(goods),
	}, nil
}

func (s *donationService) GetMyDonations(ctx context.Context, actor domain.Actor) (*domain.MyDonations, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}

	money, err := s.donationRepository.GetMoneyDonationsByDonor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	goods, err := s.donationRepository.GetGoodsDonationsByDonor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.donationRepository.SumMoneyByDonor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &domain.MyDonations{
		MoneyDonations:      toDomainMoneyList(money),
		GoodsDonations:      toDomainGoodsList(goods),
		TotalMoneyDonated:   total,
		TotalDonationsCount: len(money) + len(goods),
	}, nil
}

// resolveDonor ties the donation to the caller when signed in; guests must
// leave at least one way to identify them.
func resolveDonor(actor domain.Actor, guest domain.GuestDonorRequest) (domain.Donor, error) {
	if actor.IsAuthenticated() {
		return domain.RegisteredDonor{UserID: actor.ID, Username: actor.Username}, nil
	}

	g := domain.GuestDonor{
		Name:  strings.TrimSpace(guest.DonorName),
		Email: strings.TrimSpace(guest.DonorEmail),
		Phone: strings.TrimSpace(guest.DonorPhone),
	}
	if g.Name == "" && g.Email == "" && g.Phone == "" {
		return nil, domain.NewValidationError("donor", "guest donations need a name, email or phone")
	}
	if g.Email != "" {
		utils.InitValidator()
		if err := utils.Validate.Var(g.Email, "email"); err != nil {
			return nil, domain.NewValidationError("donor_email", "must be a valid email address")
		}
	}
	return g, nil
}

func donorColumns(d domain.Donor) (id *uuid.UUID, name, email, phone *string) {
	switch v := d.(type) {
	case domain.RegisteredDonor:
		userID := v.UserID
		return &userID, nil, nil, nil
	case domain.GuestDonor:
		return nil, optional(v.Name), optional(v.Email), optional(v.Phone)
	}
	return nil, nil, nil, nil
}

func donorOf(id *uuid.UUID, user *entities.User, name, email, phone *string) domain.Donor {
	if id != nil {
		d := domain.RegisteredDonor{UserID: *id}
		if user != nil {
			d.Username = user.Username
		}
		return d
	}
	return domain.GuestDonor{Name: deref(name), Email: deref(email), Phone: deref(phone)}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainMoneyList(donations []*entities.DonationMoney) []*domain.MoneyDonation {
	result := make([]*domain.MoneyDonation, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDomainMoney(d))
	}
	return result
}

func toDomainMoney(d *entities.DonationMoney) *domain.MoneyDonation {
	result := &domain.MoneyDonation{
		ID:            d.ID.String(),
		CrisisPostID:  d.CrisisPostID.String(),
		DisplayName:   domain.DisplayName(donorOf(d.DonorID, d.Donor, d.DonorName, d.DonorEmail, d.DonorPhone), d.IsAnonymous),
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		TransactionID: deref(d.TransactionID),
		Message:       d.Message,
		IsAnonymous:   d.IsAnonymous,
		DonatedAt:     d.DonatedAt,
	}
	if d.CrisisPost != nil {
		result.CrisisTitle = d.CrisisPost.Title
	}
	return result
}

func toDomainGoodsList(donations []*entities.DonationGoods) []*domain.GoodsDonation {
	result := make([]*domain.GoodsDonation, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDomainGoods(d))
	}
	return result
}

func toDomainGoods(d *entities.DonationGoods) *domain.GoodsDonation {
	result := &domain.GoodsDonation{
		ID:              d.ID.String(),
		CrisisPostID:    d.CrisisPostID.String(),
		DisplayName:     domain.DisplayName(donorOf(d.DonorID, d.Donor, d.DonorName, d.DonorEmail, d.DonorPhone), d.IsAnonymous),
		ItemDescription: d.ItemDescription,
		Quantity:        d.Quantity,
		DeliveryMethod:  d.DeliveryMethod,
		Message:         d.Message,
		IsAnonymous:     d.IsAnonymous,
		DonatedAt:       d.DonatedAt,
	}
	if d.CrisisPost != nil {
		result.CrisisTitle = d.CrisisPost.Title
	}
	return result
}
