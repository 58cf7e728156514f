package domain

import (
	"fmt"
	"strings"
)

// Status is shared by crisis posts and volunteer applications.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

var ErrStatusChanged = fmt.Errorf("%w: status was changed by another request", ErrConflict)

// ParseStatus accepts any casing and rejects values outside the enum.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", "must be one of pending, approved, rejected")
	}
	return s, nil
}
