package donation_test

import (
	"context"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/testutil"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/donation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service donation.DonationService
	owner   *entities.User
	donor   *entities.User
	post    *entities.CrisisPost
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", false)
	return &fixture{
		db:      db,
		service: donation.NewDonationService(donation.NewDonationRepository(db), crisis.NewCrisisRepository(db), testutil.NewLogger()),
		owner:   owner,
		donor:   testutil.CreateUser(t, db, "donor", false),
		post:    testutil.CreatePost(t, db, owner, domain.StatusApproved),
	}
}

func money(postID string, amount string) domain.MoneyDonationRequest {
	return domain.MoneyDonationRequest{
		CrisisPostID: postID,
		Amount:       decimal.RequireFromString(amount),
	}
}

func TestDonationsRequireApprovedPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := testutil.CreatePost(t, f.db, f.owner, domain.StatusPending)
	donor := testutil.ActorOf(f.donor)

	_, err := f.service.CreateMoneyDonation(ctx, donor, money(pending.ID.String(), "100"))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.service.CreateGoodsDonation(ctx, donor, domain.GoodsDonationRequest{
		CrisisPostID: pending.ID.String(), ItemDescription: "50kg rice",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.service.CreateMoneyDonation(ctx, donor, money("8a1f6a1e-5f9e-4f57-9a37-6f3f3f1d0000", "100"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoneyDonationAmountValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := testutil.ActorOf(f.donor)

	for _, amount := range []string{"0", "-5", "10.005", "100000000"} {
		t.Run(amount, func(t *testing.T) {
			_, err := f.service.CreateMoneyDonation(ctx, donor, money(f.post.ID.String(), amount))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestMoneyDonationDefaults(t *testing.T) {
	f := newFixture(t)

	d, err := f.service.CreateMoneyDonation(context.Background(), testutil.ActorOf(f.donor), money(f.post.ID.String(), "250.50"))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPaymentMethod, d.PaymentMethod)
	assert.True(t, d.Amount.Equal(decimal.RequireFromString("250.5")))
	assert.Equal(t, "donor", d.DisplayName)
	assert.Equal(t, f.post.Title, d.CrisisTitle)
}

func TestGuestDonors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anon := domain.Anonymous()
	postID := f.post.ID.String()

	_, err := f.service.CreateMoneyDonation(ctx, anon, money(postID, "10"))
	assert.ErrorIs(t, err, domain.ErrValidation, "guest needs some identity")

	req := money(postID, "10")
	req.DonorEmail = "not-an-email"
	_, err = f.service.CreateMoneyDonation(ctx, anon, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = money(postID, "10")
	req.DonorName = "Nusrat"
	d, err := f.service.CreateMoneyDonation(ctx, anon, req)
	require.NoError(t, err)
	assert.Equal(t, "Nusrat", d.DisplayName)

	req = money(postID, "10")
	req.DonorPhone = "01700000000"
	d, err = f.service.CreateMoneyDonation(ctx, anon, req)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousDonorName, d.DisplayName, "no name to show")

	goods, err := f.service.CreateGoodsDonation(ctx, anon, domain.GoodsDonationRequest{
		GuestDonorRequest: domain.GuestDonorRequest{DonorName: "Nusrat", DonorEmail: "nusrat@example.com"},
		CrisisPostID:      postID,
		ItemDescription:   "Blankets",
		Quantity:          "20 pcs",
		IsAnonymous:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousDonorName, goods.DisplayName)
}

func TestRegisteredAnonymousDonation(t *testing.T) {
	f := newFixture(t)
	req := money(f.post.ID.String(), "75")
	req.IsAnonymous = true

	d, err := f.service.CreateMoneyDonation(context.Background(), testutil.ActorOf(f.donor), req)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousDonorName, d.DisplayName)

	mine, err := f.service.GetMyDonations(context.Background(), testutil.ActorOf(f.donor))
	require.NoError(t, err)
	assert.Len(t, mine.MoneyDonations, 1, "anonymous donations still belong to the donor")
}

func TestDonationSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	postID := f.post.ID.String()

	empty, err := f.service.GetDonationSummary(ctx, postID)
	require.NoError(t, err)
	assert.True(t, empty.TotalMoney.IsZero())
	assert.Empty(t, empty.MoneyDonations)

	_, err = f.service.CreateMoneyDonation(ctx, testutil.ActorOf(f.donor), money(postID, "100"))
	require.NoError(t, err)
	guest := money(postID, "250.50")
	guest.DonorName = "Guest"
	_, err = f.service.CreateMoneyDonation(ctx, domain.Anonymous(), guest)
	require.NoError(t, err)
	_, err = f.service.CreateGoodsDonation(ctx, testutil.ActorOf(f.donor), domain.GoodsDonationRequest{
		CrisisPostID: postID, ItemDescription: "Water", Quantity: "100 bottles",
	})
	require.NoError(t, err)

	summary, err := f.service.GetDonationSummary(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, postID, summary.CrisisID)
	assert.Equal(t, f.post.Title, summary.CrisisTitle)
	assert.True(t, summary.TotalMoney.Equal(decimal.RequireFromString("350.50")), "got %s", summary.TotalMoney)
	assert.Equal(t, 2, summary.TotalDonorsMoney)
	assert.Equal(t, 1, summary.TotalGoodsDonations)
	assert.Len(t, summary.MoneyDonations, 2)
	assert.Len(t, summary.GoodsDonations, 1)

	list, err := f.service.GetMoneyDonations(ctx, postID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	goods, err := f.service.GetGoodsDonations(ctx, postID)
	require.NoError(t, err)
	require.Len(t, goods, 1)
	assert.Equal(t, "donor", goods[0].DisplayName)
}

func TestMyDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actor := testutil.ActorOf(f.donor)
	postID := f.post.ID.String()

	for _, amount := range []string{"20", "30.25"} {
		_, err := f.service.CreateMoneyDonation(ctx, actor, money(postID, amount))
		require.NoError(t, err)
	}
	_, err := f.service.CreateGoodsDonation(ctx, actor, domain.GoodsDonationRequest{
		CrisisPostID: postID, ItemDescription: "Saline", DeliveryMethod: "Courier",
	})
	require.NoError(t, err)

	other := money(postID, "999")
	other.DonorName = "Someone else"
	_, err = f.service.CreateMoneyDonation(ctx, domain.Anonymous(), other)
	require.NoError(t, err)

	mine, err := f.service.GetMyDonations(ctx, actor)
	require.NoError(t, err)
	assert.True(t, mine.TotalMoneyDonated.Equal(decimal.RequireFromString("50.25")), "got %s", mine.TotalMoneyDonated)
	assert.Equal(t, 3, mine.TotalDonationsCount)
	assert.Len(t, mine.GoodsDonations, 1)

	_, err = f.service.GetMyDonations(ctx, domain.Anonymous())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
