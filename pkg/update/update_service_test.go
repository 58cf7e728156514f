package update_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/testutil"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/update"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/volunteer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	store   *testutil.ObjectStore
	service update.UpdateService
	owner   *entities.User
	admin   *entities.User
	helper  *entities.User
	other   *entities.User
	post    *entities.CrisisPost
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	store := testutil.NewObjectStore()
	owner := testutil.CreateUser(t, db, "owner", false)
	return &fixture{
		db:    db,
		store: store,
		service: update.NewUpdateService(
			update.NewUpdateRepository(db),
			crisis.NewCrisisRepository(db),
			volunteer.NewVolunteerRepository(db),
			store,
			testutil.NewLogger(),
		),
		owner:  owner,
		admin:  testutil.CreateUser(t, db, "admin", true),
		helper: testutil.CreateUser(t, db, "helper", false),
		other:  testutil.CreateUser(t, db, "other", false),
		post:   testutil.CreatePost(t, db, owner, domain.StatusApproved),
	}
}

func (f *fixture) newUpdate(t *testing.T, author *entities.User) *domain.CrisisUpdate {
	t.Helper()
	u, err := f.service.CreateUpdate(context.Background(), testutil.ActorOf(author), domain.CreateUpdateRequest{
		CrisisPostID: f.post.ID.String(),
		Title:        "Day 3",
		Content:      "Water level is dropping",
	})
	require.NoError(t, err)
	return u
}

func TestCreateUpdateGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.CreateApplication(t, f.db, f.helper, f.post, domain.StatusApproved)
	pending := testutil.CreateUser(t, f.db, "pending", false)
	testutil.CreateApplication(t, f.db, pending, f.post, domain.StatusPending)

	tests := []struct {
		name    string
		author  domain.Actor
		wantErr error
	}{
		{"post owner", testutil.ActorOf(f.owner), nil},
		{"admin", testutil.ActorOf(f.admin), nil},
		{"approved volunteer", testutil.ActorOf(f.helper), nil},
		{"pending volunteer", testutil.ActorOf(pending), domain.ErrForbidden},
		{"unrelated user", testutil.ActorOf(f.other), domain.ErrForbidden},
		{"anonymous", domain.Anonymous(), domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := f.service.CreateUpdate(ctx, tt.author, domain.CreateUpdateRequest{
				CrisisPostID: f.post.ID.String(),
				Title:        "Relief reached",
				Content:      "Distributed 200 food packs",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.author.Username, u.CreatorName)
			assert.Equal(t, f.post.Title, u.CrisisTitle)
		})
	}
}

func TestCreateUpdateWithImage(t *testing.T) {
	f := newFixture(t)

	u, err := f.service.CreateUpdate(context.Background(), testutil.ActorOf(f.owner), domain.CreateUpdateRequest{
		CrisisPostID: f.post.ID.String(),
		Title:        "Photos",
		Content:      "Shelter camp",
		Image:        testutil.FileHeader(t, "image", "camp.png", testutil.PNG),
	})
	require.NoError(t, err)
	assert.Contains(t, u.Image, "https://cdn.test/crisis_updates/")
	assert.Equal(t, "owner@example.com", u.CreatorEmail)
}

func TestCreateUpdateUnknownPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateUpdate(context.Background(), testutil.ActorOf(f.owner), domain.CreateUpdateRequest{
		CrisisPostID: "not-a-uuid", Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditAndDeleteUpdateCreatorOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.newUpdate(t, f.owner)

	title := "Day 3 (corrected)"
	for _, actor := range []domain.Actor{testutil.ActorOf(f.admin), testutil.ActorOf(f.other), domain.Anonymous()} {
		_, err := f.service.EditUpdate(ctx, actor, u.ID, domain.EditUpdateRequest{Title: &title})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorIs(t, f.service.DeleteUpdate(ctx, actor, u.ID), domain.ErrForbidden)
	}

	edited, err := f.service.EditUpdate(ctx, testutil.ActorOf(f.owner), u.ID, domain.EditUpdateRequest{
		Title: &title,
		Image: testutil.FileHeader(t, "image", "new.png", testutil.PNG),
	})
	require.NoError(t, err)
	assert.Equal(t, title, edited.Title)
	assert.Equal(t, u.Content, edited.Content)
	assert.NotEmpty(t, edited.Image)

	require.NoError(t, f.service.DeleteUpdate(ctx, testutil.ActorOf(f.owner), u.ID))
	assert.Empty(t, f.store.Objects, "image removed with the update")

	_, err = f.service.GetUpdateByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplacingImageSurvivesFailedCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.service.CreateUpdate(ctx, testutil.ActorOf(f.owner), domain.CreateUpdateRequest{
		CrisisPostID: f.post.ID.String(),
		Title:        "Photos",
		Content:      "Before",
		Image:        testutil.FileHeader(t, "image", "a.png", testutil.PNG),
	})
	require.NoError(t, err)

	f.store.DeleteErr = errors.New("bucket unavailable")
	edited, err := f.service.EditUpdate(ctx, testutil.ActorOf(f.owner), u.ID, domain.EditUpdateRequest{
		Image: testutil.FileHeader(t, "image", "b.png", testutil.PNG),
	})
	require.NoError(t, err)
	assert.NotEqual(t, u.Image, edited.Image)
}

func TestDeleteUpdateCascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.newUpdate(t, f.owner)

	for _, user := range []*entities.User{f.other, f.helper} {
		_, err := f.service.CreateComment(ctx, testutil.ActorOf(user), domain.CreateCommentRequest{
			UpdateID: u.ID,
			Content:  "Stay safe",
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.service.DeleteUpdate(ctx, testutil.ActorOf(f.owner), u.ID))

	var count int64
	require.NoError(t, f.db.Model(&entities.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTimelineCountsComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.newUpdate(t, f.owner)
	second := f.newUpdate(t, f.admin)

	for i := 0; i < 2; i++ {
		_, err := f.service.CreateComment(ctx, testutil.ActorOf(f.other), domain.CreateCommentRequest{
			UpdateID: first.ID,
			Content:  "Thanks",
		})
		require.NoError(t, err)
	}

	timeline, err := f.service.GetUpdatesForPost(ctx, f.post.ID.String())
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	counts := map[string]int64{}
	for _, u := range timeline {
		counts[u.ID] = u.TotalComments
		assert.Empty(t, u.Comments)
	}
	assert.Equal(t, map[string]int64{first.ID: 2, second.ID: 0}, counts)

	detail, err := f.service.GetUpdateByID(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.TotalComments)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "other", detail.Comments[0].UserName)

	mine, err := f.service.GetMyUpdates(ctx, testutil.ActorOf(f.admin))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID)

	_, err = f.service.GetMyUpdates(ctx, domain.Anonymous())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.newUpdate(t, f.owner)

	_, err := f.service.CreateComment(ctx, domain.Anonymous(), domain.CreateCommentRequest{UpdateID: u.ID, Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.service.CreateComment(ctx, testutil.ActorOf(f.other), domain.CreateCommentRequest{
		UpdateID: "7d3c1f5e-0000-4000-8000-000000000000", Content: "hi",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c, err := f.service.CreateComment(ctx, testutil.ActorOf(f.other), domain.CreateCommentRequest{UpdateID: u.ID, Content: "Need boats?"})
	require.NoError(t, err)
	assert.Equal(t, "other", c.UserName)

	_, err = f.service.EditComment(ctx, testutil.ActorOf(f.owner), c.ID, domain.EditCommentRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, f.service.DeleteComment(ctx, testutil.ActorOf(f.admin), c.ID), domain.ErrForbidden)

	edited, err := f.service.EditComment(ctx, testutil.ActorOf(f.other), c.ID, domain.EditCommentRequest{Content: "Need two boats"})
	require.NoError(t, err)
	assert.Equal(t, "Need two boats", edited.Content)
	assert.Equal(t, "other", edited.UserName)

	list, err := f.service.GetCommentsForUpdate(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	mine, err := f.service.GetMyComments(ctx, testutil.ActorOf(f.other))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, f.service.DeleteComment(ctx, testutil.ActorOf(f.other), c.ID))
	assert.ErrorIs(t, f.service.DeleteComment(ctx, testutil.ActorOf(f.other), c.ID), domain.ErrNotFound)
}
