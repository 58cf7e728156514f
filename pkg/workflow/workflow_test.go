package workflow

import (
	"errors"
	"testing"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		to      domain.Status
		wantErr error
	}{
		{"pending to approved", domain.StatusPending, domain.StatusApproved, nil},
		{"pending to rejected", domain.StatusPending, domain.StatusRejected, nil},
		{"approve twice", domain.StatusApproved, domain.StatusApproved, domain.ErrConflict},
		{"reject twice", domain.StatusRejected, domain.StatusRejected, domain.ErrConflict},
		{"approved is terminal", domain.StatusApproved, domain.StatusRejected, domain.ErrConflict},
		{"rejected is terminal", domain.StatusRejected, domain.StatusApproved, domain.ErrConflict},
		{"back to pending", domain.StatusApproved, domain.StatusPending, domain.ErrConflict},
		{"unknown target", domain.StatusPending, domain.Status("archived"), domain.ErrValidation},
	}

	for _, m := range []Machine{PostStatus, ApplicationStatus} {
		for _, tt := range tests {
			t.Run(m.name+"/"+tt.name, func(t *testing.T) {
				err := m.Transition(tt.from, tt.to)
				if tt.wantErr == nil {
					assert.NoError(t, err)
					return
				}
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			})
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, PostStatus.Terminal(domain.StatusPending))
	assert.True(t, PostStatus.Terminal(domain.StatusApproved))
	assert.True(t, PostStatus.Terminal(domain.StatusRejected))
	assert.Equal(t, domain.StatusPending, Initial())
}

func TestRequireApprovedPost(t *testing.T) {
	assert.NoError(t, RequireApprovedPost(domain.StatusApproved))
	assert.ErrorIs(t, RequireApprovedPost(domain.StatusPending), domain.ErrInvalidState)
	assert.ErrorIs(t, RequireApprovedPost(domain.StatusRejected), domain.ErrInvalidState)
}

func TestCanPostUpdate(t *testing.T) {
	ownerID := uuid.New()
	owner := domain.Actor{ID: ownerID}
	admin := domain.Actor{ID: uuid.New(), IsAdmin: true}
	volunteer := domain.Actor{ID: uuid.New()}

	assert.NoError(t, CanPostUpdate(owner, ownerID, false))
	assert.NoError(t, CanPostUpdate(admin, ownerID, false))
	assert.NoError(t, CanPostUpdate(volunteer, ownerID, true))
	assert.ErrorIs(t, CanPostUpdate(volunteer, ownerID, false), domain.ErrForbidden)
	assert.ErrorIs(t, CanPostUpdate(domain.Anonymous(), uuid.Nil, false), domain.ErrForbidden)
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus(" Approved ")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, s)

	_, err = domain.ParseStatus("archived")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
}
