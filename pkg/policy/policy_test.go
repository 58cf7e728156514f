package policy

import (
	"errors"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	ownerID := uuid.New()
	postOwnerID := uuid.New()

	anon := domain.Anonymous()
	owner := domain.Actor{ID: ownerID, Username: "owner", Role: domain.RoleUser}
	postOwner := domain.Actor{ID: postOwnerID, Username: "organizer", Role: domain.RoleUser}
	stranger := domain.Actor{ID: uuid.New(), Username: "stranger", Role: domain.RoleUser}
	admin := domain.Actor{ID: uuid.New(), Username: "admin", Role: domain.RoleAdmin, IsAdmin: true}

	pending := Resource{OwnerID: ownerID, PostOwnerID: postOwnerID, Status: domain.StatusPending}
	approved := Resource{OwnerID: ownerID, PostOwnerID: postOwnerID, Status: domain.StatusApproved}

	tests := []struct {
		name   string
		actor  domain.Actor
		action Action
		res    Resource
		want   bool
	}{
		{"anonymous reads approved post", anon, ReadPost, approved, true},
		{"anonymous cannot read pending post", anon, ReadPost, pending, false},
		{"stranger cannot read pending post", stranger, ReadPost, pending, false},
		{"owner reads own pending post", owner, ReadPost, pending, true},
		{"admin reads pending post", admin, ReadPost, pending, true},

		{"anonymous cannot create post", anon, CreatePost, Resource{}, false},
		{"user creates post", stranger, CreatePost, Resource{}, true},

		{"owner edits post", owner, EditPost, pending, true},
		{"stranger cannot edit post", stranger, EditPost, approved, false},
		{"admin cannot edit another's post", admin, EditPost, approved, false},
		{"owner deletes post", owner, DeletePost, approved, true},
		{"stranger cannot delete post", stranger, DeletePost, approved, false},

		{"admin reviews post", admin, ReviewPost, pending, true},
		{"owner cannot review own post", owner, ReviewPost, pending, false},
		{"non-admin flag alone is not enough", domain.Actor{IsAdmin: true}, ReviewPost, pending, false},

		{"owner adds section", owner, AddSection, approved, true},
		{"stranger cannot add section", stranger, AddSection, approved, false},

		{"anonymous cannot apply", anon, Apply, approved, false},
		{"user applies", stranger, Apply, approved, true},

		{"post owner reviews application", postOwner, ReviewApplication, pending, true},
		{"admin reviews application", admin, ReviewApplication, pending, true},
		{"applicant cannot review own application", owner, ReviewApplication, pending, false},
		{"stranger cannot review application", stranger, ReviewApplication, pending, false},
		{"post owner lists applications", postOwner, ListApplications, Resource{PostOwnerID: postOwnerID}, true},
		{"stranger cannot list applications", stranger, ListApplications, Resource{PostOwnerID: postOwnerID}, false},

		{"anonymous donates", anon, Donate, approved, true},

		{"creator edits update", owner, EditUpdate, approved, true},
		{"admin cannot edit update", admin, EditUpdate, approved, false},
		{"admin cannot delete another's update", admin, DeleteUpdate, approved, false},
		{"post owner cannot delete another's update", postOwner, DeleteUpdate, approved, false},

		{"anonymous cannot comment", anon, CreateComment, Resource{}, false},
		{"author edits comment", owner, EditComment, Resource{OwnerID: ownerID}, true},
		{"stranger cannot edit comment", stranger, EditComment, Resource{OwnerID: ownerID}, false},
		{"author deletes comment", owner, DeleteComment, Resource{OwnerID: ownerID}, true},
		{"stranger cannot delete comment", stranger, DeleteComment, Resource{OwnerID: ownerID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action, tt.res))
		})
	}
}

func TestUnknownActionIsDenied(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), IsAdmin: true}
	assert.False(t, Can(admin, Action("post:launch"), Resource{}))
}

func TestAuthorizeReturnsForbidden(t *testing.T) {
	err := Authorize(domain.Anonymous(), ReviewPost, Resource{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "not permitted", err.Error())

	assert.NoError(t, Authorize(domain.Anonymous(), Donate, Resource{}))
}

func TestApplicationResourceUsesEnclosingPostOwner(t *testing.T) {
	post := &entities.CrisisPost{ID: uuid.New(), OwnerID: uuid.New()}
	app := &entities.VolunteerApplication{UserID: uuid.New(), CrisisPostID: post.ID, Status: "pending"}

	r := ApplicationResource(app, post)
	assert.Equal(t, app.UserID, r.OwnerID)
	assert.Equal(t, post.OwnerID, r.PostOwnerID)
	assert.Equal(t, domain.StatusPending, r.Status)
}
