package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessApplyVolunteer     = "volunteer application submitted successfully"
	MessageSuccessGetApplications    = "volunteer applications retrieved successfully"
	MessageSuccessApproveApplication = "volunteer application approved"
	MessageSuccessRejectApplication  = "volunteer application rejected"
	MessageFailedApplyVolunteer      = "failed to submit volunteer application"
	MessageFailedGetApplications     = "failed to retrieve volunteer applications"
	MessageFailedReviewApplication   = "failed to review volunteer application"

	ErrApplicationNotFound = fmt.Errorf("volunteer application %w", ErrNotFound)
	ErrAlreadyApplied      = fmt.Errorf("%w: you have already applied to volunteer for this crisis post", ErrConflict)
)

type (
	ApplyVolunteerRequest struct {
		CrisisPostID string `json:"crisis_post" validate:"required"`
		Message      string `json:"message"`
	}

	VolunteerApplication struct {
		ID           string    `json:"id"`
		UserID       string    `json:"user_id"`
		Username     string    `json:"username"`
		Email        string    `json:"email,omitempty"`
		Phone        string    `json:"phone,omitempty"`
		CrisisPostID string    `json:"crisis_post"`
		CrisisTitle  string    `json:"crisis_title"`
		Message      string    `json:"message"`
		Status       Status    `json:"status"`
		AppliedAt    time.Time `json:"applied_at"`
	}
)
