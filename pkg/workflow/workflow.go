// Package workflow holds the status machines for crisis posts and volunteer
// applications, and the preconditions other operations depend on.
package workflow

import (
	"fmt"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/google/uuid"
)

type Machine struct {
	name        string
	transitions map[domain.Status][]domain.Status
}

var reviewTransitions = map[domain.Status][]domain.Status{
	domain.StatusPending: {domain.StatusApproved, domain.StatusRejected},
}

var (
	PostStatus        = Machine{name: "crisis post", transitions: reviewTransitions}
	ApplicationStatus = Machine{name: "volunteer application", transitions: reviewTransitions}
)

func Initial() domain.Status {
	return domain.StatusPending
}

func (m Machine) Allows(from, to domain.Status) bool {
	for _, next := range m.transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves the status.
func (m Machine) Terminal(s domain.Status) bool {
	return len(m.transitions[s]) == 0
}

// Transition checks that from → to is a legal move.
func (m Machine) Transition(from, to domain.Status) error {
	if !to.Valid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", to))
	}
	if from == to {
		return fmt.Errorf("%w: %s is already %s", domain.ErrConflict, m.name, to)
	}
	if !m.Allows(from, to) {
		return fmt.Errorf("%w: %s cannot move from %s to %s", domain.ErrConflict, m.name, from, to)
	}
	return nil
}

// RequireApprovedPost gates volunteering and donating.
func RequireApprovedPost(status domain.Status) error {
	if status != domain.StatusApproved {
		return domain.ErrCrisisPostNotApproved
	}
	return nil
}

// CanPostUpdate allows admins, the post owner, and volunteers whose
// application on the post was approved.
func CanPostUpdate(actor domain.Actor, postOwnerID uuid.UUID, hasApprovedApplication bool) error {
	if !actor.IsAuthenticated() {
		return domain.ErrForbidden
	}
	if actor.IsAdmin || actor.ID == postOwnerID || hasApprovedApplication {
		return nil
	}
	return domain.ErrForbidden
}
