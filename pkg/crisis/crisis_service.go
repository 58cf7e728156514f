package crisis

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/storage"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/policy"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type (
	CrisisService interface {
		CreatePost(ctx context.Context, actor domain.Actor, req domain.CreateCrisisPostRequest) (*domain.CrisisPost, error)
		GetPosts(ctx context.Context, actor domain.Actor, req domain.ListCrisisPostsRequest) (*domain.CrisisPostList, error)
		GetMyPosts(ctx context.Context, actor domain.Actor) ([]*domain.CrisisPost, error)
		GetPostByID(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error)
		UpdatePost(ctx context.Context, actor domain.Actor, id string, req domain.UpdateCrisisPostRequest) (*domain.CrisisPost, error)
		DeletePost(ctx context.Context, actor domain.Actor, id string) error
		ApprovePost(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error)
		RejectPost(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error)
		AddSection(ctx context.Context, actor domain.Actor, postID string, req domain.CreateSectionRequest) (*domain.PostSection, error)
	}

	crisisService struct {
		crisisRepository CrisisRepository
		s3               storage.ObjectStore
		logger           *logrus.Logger
	}
)

func NewCrisisService(crisisRepository CrisisRepository, s3 storage.ObjectStore, logger *logrus.Logger) CrisisService {
	return &crisisService{
		crisisRepository: crisisRepository,
		s3:               s3,
		logger:           logger,
	}
}

// FindPost resolves a raw post id, reporting malformed and unknown ids
// alike as ErrCrisisPostNotFound.
func FindPost(ctx context.Context, repo CrisisRepository, rawID string) (*entities.CrisisPost, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrCrisisPostNotFound
	}
	post, err := repo.GetPostByID(ctx, id)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrCrisisPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *crisisService) CreatePost(ctx context.Context, actor domain.Actor, req domain.CreateCrisisPostRequest) (*domain.CrisisPost, error) {
	if err := policy.Authorize(actor, policy.CreatePost, policy.Resource{}); err != nil {
		return nil, err
	}

	post := &entities.CrisisPost{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		PostType:    req.PostType,
		Location:    req.Location,
		Status:      workflow.Initial().String(),
		OwnerID:     actor.ID,
	}

	if req.BannerImage != nil {
		link, err := s.uploadBanner(ctx, post.ID, req.BannerImage)
		if err != nil {
			return nil, err
		}
		post.BannerImage = link
	}

	if err := s.crisisRepository.CreatePost(ctx, post); err != nil {
		s.removeImage(ctx, post.BannerImage, post.ID)
		return nil, err
	}

	return s.reload(ctx, post.ID)
}

func (s *crisisService) GetPosts(ctx context.Context, actor domain.Actor, req domain.ListCrisisPostsRequest) (*domain.CrisisPostList, error) {
	page, limit := domain.NormalizePage(req.Page, req.Limit)
	filter := PostFilter{
		PostType: req.PostType,
		Search:   req.Search,
		Page:     page,
		Limit:    limit,
	}

	if policy.Can(actor, policy.ListAllStatuses, policy.Resource{}) {
		if req.Status != "" {
			status, err := domain.ParseStatus(req.Status)
			if err != nil {
				return nil, err
			}
			filter.Status = status.String()
		}
	} else {
		filter.Status = domain.StatusApproved.String()
	}

	posts, count, err := s.crisisRepository.GetPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CrisisPost, 0, len(posts))
	for _, p := range posts {
		result = append(result, toDomainPost(p))
	}
	return &domain.CrisisPostList{
		Posts:      result,
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

func (s *crisisService) GetMyPosts(ctx context.Context, actor domain.Actor) ([]*domain.CrisisPost, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	posts, err := s.crisisRepository.GetPostsByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CrisisPost, 0, len(posts))
	for _, p := range posts {
		result = append(result, toDomainPost(p))
	}
	return result, nil
}

func (s *crisisService) GetPostByID(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error) {
	post, err := FindPost(ctx, s.crisisRepository, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReadPost, policy.PostResource(post)); err != nil {
		return nil, err
	}
	return toDomainPost(post), nil
}

func (s *crisisService) UpdatePost(ctx context.Context, actor domain.Actor, id string, req domain.UpdateCrisisPostRequest) (*domain.CrisisPost, error) {
	post, err := FindPost(ctx, s.crisisRepository, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.EditPost, policy.PostResource(post)); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PostType != nil {
		fields["post_type"] = *req.PostType
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}

	oldBanner := post.BannerImage
	if req.BannerImage != nil {
		link, err := s.uploadBanner(ctx, post.ID, req.BannerImage)
		if err != nil {
			return nil, err
		}
		fields["banner_image"] = link
	}

	if len(fields) == 0 {
		return toDomainPost(post), nil
	}

	if err := s.crisisRepository.UpdatePost(ctx, post.ID, fields); err != nil {
		if link, ok := fields["banner_image"].(string); ok {
			s.removeImage(ctx, link, post.ID)
		}
		if utils.IsNotFound(err) {
			return nil, domain.ErrCrisisPostNotFound
		}
		return nil, err
	}

	if _, replaced := fields["banner_image"]; replaced {
		s.removeImage(ctx, oldBanner, post.ID)
	}

	return s.reload(ctx, post.ID)
}

func (s *crisisService) DeletePost(ctx context.Context, actor domain.Actor, id string) error {
	post, err := FindPost(ctx, s.crisisRepository, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.DeletePost, policy.PostResource(post)); err != nil {
		return err
	}

	if err := s.crisisRepository.DeletePost(ctx, post.ID); err != nil {
		if utils.IsNotFound(err) {
			return domain.ErrCrisisPostNotFound
		}
		return err
	}

	s.removeImage(ctx, post.BannerImage, post.ID)
	return nil
}

func (s *crisisService) ApprovePost(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error) {
	return s.review(ctx, actor, id, domain.StatusApproved)
}

func (s *crisisService) RejectPost(ctx context.Context, actor domain.Actor, id string) (*domain.CrisisPost, error) {
	return s.review(ctx, actor, id, domain.StatusRejected)
}

func (s *crisisService) review(ctx context.Context, actor domain.Actor, id string, to domain.Status) (*domain.CrisisPost, error) {
	post, err := FindPost(ctx, s.crisisRepository, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReviewPost, policy.PostResource(post)); err != nil {
		return nil, err
	}

	from := domain.Status(post.Status)
	if err := workflow.PostStatus.Transition(from, to); err != nil {
		return nil, err
	}
	if err := s.crisisRepository.TransitionStatus(ctx, post.ID, from, to); err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrCrisisPostNotFound
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"post_id":  post.ID,
		"admin_id": actor.ID,
		"status":   to,
	}).Info("crisis post reviewed")

	return s.reload(ctx, post.ID)
}

func (s *crisisService) AddSection(ctx context.Context, actor domain.Actor, postID string, req domain.CreateSectionRequest) (*domain.PostSection, error) {
	post, err := FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.AddSection, policy.PostResource(post)); err != nil {
		return nil, err
	}

	creatorID := actor.ID
	section := &entities.PostSection{
		PostID:      post.ID,
		SectionType: req.SectionType,
		Content:     req.Content,
		CreatedByID: &creatorID,
	}
	if err := s.crisisRepository.CreateSection(ctx, section); err != nil {
		return nil, err
	}

	result := toDomainSection(section)
	result.CreatorName = actor.Username
	return result, nil
}

func (s *crisisService) reload(ctx context.Context, id uuid.UUID) (*domain.CrisisPost, error) {
	post, err := s.crisisRepository.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainPost(post), nil
}

func (s *crisisService) uploadBanner(ctx context.Context, postID uuid.UUID, file *multipart.FileHeader) (string, error) {
	key, err := s.s3.UploadFile(
		ctx,
		fmt.Sprintf("crisis-%s-%d", postID, time.Now().UnixNano()),
		file,
		"crisis_banners",
		storage.AllowImage...,
	)
	if err != nil {
		if storage.IsRejected(err) {
			return "", domain.NewValidationError("banner_image", err.Error())
		}
		return "", err
	}
	return s.s3.GetPublicLinkKey(key), nil
}

// removeImage deletes a stored image on a best-effort basis.
func (s *crisisService) removeImage(ctx context.Context, link string, postID uuid.UUID) {
	if link == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, s.s3.GetObjectKeyFromLink(link)); err != nil {
		s.logger.WithError(err).WithField("post_id", postID).Warn("failed to delete banner image")
	}
}

func toDomainPost(p *entities.CrisisPost) *domain.CrisisPost {
	post := &domain.CrisisPost{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		PostType:    p.PostType,
		Location:    p.Location,
		BannerImage: p.BannerImage,
		Status:      domain.Status(p.Status),
		OwnerID:     p.OwnerID.String(),
		Sections:    make([]*domain.PostSection, 0, len(p.Sections)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Owner != nil {
		post.Owner = p.Owner.Username
	}
	for _, sec := range p.Sections {
		post.Sections = append(post.Sections, toDomainSection(sec))
	}
	return post
}

func toDomainSection(sec *entities.PostSection) *domain.PostSection {
	creator := domain.UnknownCreatorName
	if sec.CreatedBy != nil {
		creator = sec.CreatedBy.Username
	}
	return &domain.PostSection{
		ID:          sec.ID.String(),
		PostID:      sec.PostID.String(),
		SectionType: sec.SectionType,
		Content:     sec.Content,
		CreatorName: creator,
		CreatedAt:   sec.CreatedAt,
		UpdatedAt:   sec.UpdatedAt,
	}
}
