package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateUpdate  = "Crisis update created successfully!"
	MessageSuccessGetUpdates    = "crisis updates retrieved successfully"
	MessageSuccessGetUpdate     = "crisis update retrieved successfully"
	MessageSuccessEditUpdate    = "crisis update edited successfully"
	MessageSuccessDeleteUpdate  = "crisis update deleted successfully"
	MessageSuccessCreateComment = "Comment added successfully!"
	MessageSuccessGetComments   = "comments retrieved successfully"
	MessageSuccessEditComment   = "comment edited successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"

	MessageFailedCreateUpdate  = "failed to create crisis update"
	MessageFailedGetUpdates    = "failed to retrieve crisis updates"
	MessageFailedEditUpdate    = "failed to edit crisis update"
	MessageFailedDeleteUpdate  = "failed to delete crisis update"
	MessageFailedCreateComment = "failed to add comment"
	MessageFailedGetComments   = "failed to retrieve comments"
	MessageFailedEditComment   = "failed to edit comment"
	MessageFailedDeleteComment = "failed to delete comment"

	ErrUpdateNotFound  = fmt.Errorf("crisis update %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
)

type (
	CreateUpdateRequest struct {
		CrisisPostID string                `json:"crisis_post" form:"crisis_post" validate:"required"`
		Title        string                `json:"title" form:"title" validate:"required,max=200"`
		Content      string                `json:"content" form:"content" validate:"required"`
		Image        *multipart.FileHeader `json:"-" form:"image"`
	}

	EditUpdateRequest struct {
		Title   *string               `json:"title" form:"title" validate:"omitempty,max=200"`
		Content *string               `json:"content" form:"content" validate:"omitempty,min=1"`
		Image   *multipart.FileHeader `json:"-" form:"image"`
	}

	CreateCommentRequest struct {
		UpdateID string `json:"update" validate:"required"`
		Content  string `json:"content" validate:"required"`
	}

	EditCommentRequest struct {
		Content string `json:"content" validate:"required"`
	}

	CrisisUpdate struct {
		ID            string     `json:"id"`
		CrisisPostID  string     `json:"crisis_post"`
		CrisisTitle   string     `json:"crisis_title"`
		CreatorID     string     `json:"creator_id"`
		CreatorName   string     `json:"creator_name"`
		CreatorEmail  string     `json:"creator_email"`
		Title         string     `json:"title"`
		Content       string     `json:"content"`
		Image         string     `json:"image,omitempty"`
		TotalComments int64      `json:"total_comments"`
		Comments      []*Comment `json:"comments,omitempty"`
		CreatedAt     time.Time  `json:"created_at"`
		UpdatedAt     time.Time  `json:"updated_at"`
	}

	Comment struct {
		ID        string    `json:"id"`
		UpdateID  string    `json:"update"`
		UserID    string    `json:"user_id"`
		UserName  string    `json:"user_name"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)
