package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

const (
	PostTypeNational   = "national"
	PostTypeDistrict   = "district"
	PostTypeIndividual = "individual"

	SectionShelter      = "shelter"
	SectionResources    = "resources"
	SectionFund         = "fund"
	SectionHotline      = "hotline"
	SectionDistribution = "distribution"
	SectionUpdates      = "updates"

	UnknownCreatorName = "Unknown"
)

var (
	MessageSuccessCreateCrisisPost  = "crisis post created successfully, awaiting admin approval"
	MessageSuccessGetCrisisPosts    = "crisis posts retrieved successfully"
	MessageSuccessGetCrisisPost     = "crisis post retrieved successfully"
	MessageSuccessUpdateCrisisPost  = "crisis post updated successfully"
	MessageSuccessDeleteCrisisPost  = "crisis post deleted successfully"
	MessageSuccessApproveCrisisPost = "crisis post approved"
	MessageSuccessRejectCrisisPost  = "crisis post rejected"
	MessageSuccessCreateSection     = "section added successfully"

	MessageFailedCreateCrisisPost = "failed to create crisis post"
	MessageFailedGetCrisisPosts   = "failed to retrieve crisis posts"
	MessageFailedGetCrisisPost    = "failed to retrieve crisis post"
	MessageFailedUpdateCrisisPost = "failed to update crisis post"
	MessageFailedDeleteCrisisPost = "failed to delete crisis post"
	MessageFailedReviewCrisisPost = "failed to review crisis post"
	MessageFailedCreateSection    = "failed to add section"

	ErrCrisisPostNotFound    = fmt.Errorf("crisis post %w", ErrNotFound)
	ErrCrisisPostNotApproved = fmt.Errorf("%w: crisis post is not approved", ErrInvalidState)
)

type (
	CreateCrisisPostRequest struct {
		Title       string                `json:"title" form:"title" validate:"required,max=200"`
		Description string                `json:"description" form:"description" validate:"required"`
		PostType    string                `json:"post_type" form:"post_type" validate:"required,oneof=national district individual"`
		Location    string                `json:"location" form:"location" validate:"omitempty,max=200"`
		BannerImage *multipart.FileHeader `json:"-" form:"banner_image"`
	}

	UpdateCrisisPostRequest struct {
		Title       *string               `json:"title" form:"title" validate:"omitempty,max=200"`
		Description *string               `json:"description" form:"description" validate:"omitempty,min=1"`
		PostType    *string               `json:"post_type" form:"post_type" validate:"omitempty,oneof=national district individual"`
		Location    *string               `json:"location" form:"location" validate:"omitempty,max=200"`
		BannerImage *multipart.FileHeader `json:"-" form:"banner_image"`
	}

	ListCrisisPostsRequest struct {
		Status   string `query:"status"`
		PostType string `query:"post_type"`
		Search   string `query:"search"`
		Page     int    `query:"page"`
		Limit    int    `query:"limit"`
	}

	CreateSectionRequest struct {
		SectionType string `json:"section_type" validate:"required,oneof=shelter resources fund hotline distribution updates"`
		Content     string `json:"content"`
	}

	CrisisPost struct {
		ID          string         `json:"id"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		PostType    string         `json:"post_type"`
		Location    string         `json:"location,omitempty"`
		BannerImage string         `json:"banner_image,omitempty"`
		Status      Status         `json:"status"`
		OwnerID     string         `json:"owner_id"`
		Owner       string         `json:"owner"`
		Sections    []*PostSection `json:"sections"`
		CreatedAt   time.Time      `json:"created_at"`
		UpdatedAt   time.Time      `json:"updated_at"`
	}

	PostSection struct {
		ID          string    `json:"id"`
		PostID      string    `json:"post_id"`
		SectionType string    `json:"section_type"`
		Content     string    `json:"content"`
		CreatorName string    `json:"creator_name"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	CrisisPostList struct {
		Posts      []*CrisisPost `json:"posts"`
		Pagination Pagination    `json:"pagination"`
	}
)
