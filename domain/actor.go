package domain

import "github.com/google/uuid"

// Actor is the caller on whose behalf an operation runs. The zero value is
// the anonymous actor.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     string
	IsAdmin  bool
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil
}

func (a Actor) Is(id uuid.UUID) bool {
	return a.IsAuthenticated() && a.ID == id
}
