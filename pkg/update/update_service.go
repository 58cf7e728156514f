package update

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/storage"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/policy"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type (
	UpdateService interface {
		CreateUpdate(ctx context.Context, actor domain.Actor, req domain.CreateUpdateRequest) (*domain.CrisisUpdate, error)
		GetUpdatesForPost(ctx context.Context, postID string) ([]*domain.CrisisUpdate, error)
		GetMyUpdates(ctx context.Context, actor domain.Actor) ([]*domain.CrisisUpdate, error)
		GetUpdateByID(ctx context.Context, id string) (*domain.CrisisUpdate, error)
		EditUpdate(ctx context.Context, actor domain.Actor, id string, req domain.EditUpdateRequest) (*domain.CrisisUpdate, error)
		DeleteUpdate(ctx context.Context, actor domain.Actor, id string) error

		CreateComment(ctx context.Context, actor domain.Actor, req domain.CreateCommentRequest) (*domain.Comment, error)
		GetCommentsForUpdate(ctx context.Context, updateID string) ([]*domain.Comment, error)
		GetMyComments(ctx context.Context, actor domain.Actor) ([]*domain.Comment, error)
		EditComment(ctx context.Context, actor domain.Actor, id string, req domain.EditCommentRequest) (*domain.Comment, error)
		DeleteComment(ctx context.Context, actor domain.Actor, id string) error
	}

	// ApprovalChecker answers whether a user volunteers on a post with an
	// approved application.
	ApprovalChecker interface {
		HasApprovedApplication(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	}

	updateService struct {
		updateRepository UpdateRepository
		crisisRepository crisis.CrisisRepository
		approvals        ApprovalChecker
		s3               storage.ObjectStore
		logger           *logrus.Logger
	}
)

func NewUpdateService(
	updateRepository UpdateRepository,
	crisisRepository crisis.CrisisRepository,
	approvals ApprovalChecker,
	s3 storage.ObjectStore,
	logger *logrus.Logger,
) UpdateService {
	return &updateService{
		updateRepository: updateRepository,
		crisisRepository: crisisRepository,
		approvals:        approvals,
		s3:               s3,
		logger:           logger,
	}
}

func (s *updateService) CreateUpdate(ctx context.Context, actor domain.Actor, req domain.CreateUpdateRequest) (*domain.CrisisUpdate, error) {
	if err := policy.Authorize(actor, policy.CreateUpdate, policy.Resource{}); err != nil {
		return nil, err
	}
	post, err := crisis.FindPost(ctx, s.crisisRepository, req.CrisisPostID)
	if err != nil {
		return nil, err
	}

	approved := false
	if !actor.IsAdmin && !actor.Is(post.OwnerID) {
		approved, err = s.approvals.HasApprovedApplication(ctx, actor.ID, post.ID)
		if err != nil {
			return nil, err
		}
	}
	if err := workflow.CanPostUpdate(actor, post.OwnerID, approved); err != nil {
		return nil, err
	}

	update := &entities.CrisisUpdate{
		ID:           uuid.New(),
		CrisisPostID: post.ID,
		CreatorID:    actor.ID,
		Title:        req.Title,
		Content:      req.Content,
	}
	if req.Image != nil {
		link, err := s.uploadImage(ctx, update.ID, req.Image)
		if err != nil {
			return nil, err
		}
		update.Image = link
	}

	if err := s.updateRepository.CreateUpdate(ctx, update); err != nil {
		s.removeImage(ctx, update.Image, update.ID)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"update_id":  update.ID,
		"post_id":    post.ID,
		"creator_id": actor.ID,
	}).Info("crisis update posted")

	return s.reload(ctx, update.ID)
}

func (s *updateService) GetUpdatesForPost(ctx context.Context, postID string) ([]*domain.CrisisUpdate, error) {
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	updates, err := s.updateRepository.GetUpdatesByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return s.toDomainTimeline(ctx, updates)
}

func (s *updateService) GetMyUpdates(ctx context.Context, actor domain.Actor) ([]*domain.CrisisUpdate, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	updates, err := s.updateRepository.GetUpdatesByCreator(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.toDomainTimeline(ctx, updates)
}

func (s *updateService) GetUpdateByID(ctx context.Context, id string) (*domain.CrisisUpdate, error) {
	update, err := s.findUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainUpdate(update, true), nil
}

func (s *updateService) EditUpdate(ctx context.Context, actor domain.Actor, id string, req domain.EditUpdateRequest) (*domain.CrisisUpdate, error) {
	update, err := s.findUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.EditUpdate, policy.UpdateResource(update)); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}

	oldImage := update.Image
	if req.Image != nil {
		link, err := s.uploadImage(ctx, update.ID, req.Image)
		if err != nil {
			return nil, err
		}
		fields["image"] = link
	}

	if len(fields) == 0 {
		return toDomainUpdate(update, true), nil
	}

	if err := s.updateRepository.UpdateUpdate(ctx, update.ID, fields); err != nil {
		if link, ok := fields["image"].(string); ok {
			s.removeImage(ctx, link, update.ID)
		}
		if utils.IsNotFound(err) {
			return nil, domain.ErrUpdateNotFound
		}
		return nil, err
	}

	if _, replaced := fields["image"]; replaced {
		s.removeImage(ctx, oldImage, update.ID)
	}

	return s.reload(ctx, update.ID)
}

func (s *updateService) DeleteUpdate(ctx context.Context, actor domain.Actor, id string) error {
	update, err := s.findUpdate(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.DeleteUpdate, policy.UpdateResource(update)); err != nil {
		return err
	}

	if err := s.updateRepository.DeleteUpdate(ctx, update.ID); err != nil {
		if utils.IsNotFound(err) {
			return domain.ErrUpdateNotFound
		}
		return err
	}

	s.removeImage(ctx, update.Image, update.ID)
	return nil
}

func (s *updateService) CreateComment(ctx context.Context, actor domain.Actor, req domain.CreateCommentRequest) (*domain.Comment, error) {
	if err := policy.Authorize(actor, policy.CreateComment, policy.Resource{}); err != nil {
		return nil, err
	}
	update, err := s.findUpdate(ctx, req.UpdateID)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		UpdateID: update.ID,
		UserID:   actor.ID,
		Content:  req.Content,
	}
	if err := s.updateRepository.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	result := toDomainComment(comment)
	result.UserName = actor.Username
	return result, nil
}

func (s *updateService) GetCommentsForUpdate(ctx context.Context, updateID string) ([]*domain.Comment, error) {
	update, err := s.findUpdate(ctx, updateID)
	if err != nil {
		return nil, err
	}
	comments, err := s.updateRepository.GetCommentsByUpdate(ctx, update.ID)
	if err != nil {
		return nil, err
	}
	return toDomainComments(comments), nil
}

func (s *updateService) GetMyComments(ctx context.Context, actor domain.Actor) ([]*domain.Comment, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	comments, err := s.updateRepository.GetCommentsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toDomainComments(comments), nil
}

func (s *updateService) EditComment(ctx context.Context, actor domain.Actor, id string, req domain.EditCommentRequest) (*domain.Comment, error) {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.EditComment, policy.CommentResource(comment)); err != nil {
		return nil, err
	}

	if err := s.updateRepository.UpdateComment(ctx, comment.ID, req.Content); err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}

	edited, err := s.updateRepository.GetCommentByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return toDomainComment(edited), nil
}

func (s *updateService) DeleteComment(ctx context.Context, actor domain.Actor, id string) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.DeleteComment, policy.CommentResource(comment)); err != nil {
		return err
	}

	if err := s.updateRepository.DeleteComment(ctx, comment.ID); err != nil {
		if utils.IsNotFound(err) {
			return domain.ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *updateService) findUpdate(ctx context.Context, rawID string) (*entities.CrisisUpdate, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrUpdateNotFound
	}
	update, err := s.updateRepository.GetUpdateByID(ctx, id)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrUpdateNotFound
		}
		return nil, err
	}
	return update, nil
}

func (s *updateService) findComment(ctx context.Context, rawID string) (*entities.Comment, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}
	comment, err := s.updateRepository.GetCommentByID(ctx, id)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *updateService) reload(ctx context.Context, id uuid.UUID) (*domain.CrisisUpdate, error) {
	update, err := s.updateRepository.GetUpdateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainUpdate(update, true), nil
}

// toDomainTimeline projects updates without their comments, filling in
// comment counts with one grouped query.
func (s *updateService) toDomainTimeline(ctx context.Context, updates []*entities.CrisisUpdate) ([]*domain.CrisisUpdate, error) {
	ids := make([]uuid.UUID, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}
	counts, err := s.updateRepository.CountCommentsByUpdates(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CrisisUpdate, 0, len(updates))
	for _, u := range updates {
		item := toDomainUpdate(u, false)
		item.TotalComments = counts[u.ID]
		result = append(result, item)
	}
	return result, nil
}

func (s *updateService) uploadImage(ctx context.Context, updateID uuid.UUID, file *multipart.FileHeader) (string, error) {
	key, err := s.s3.UploadFile(
		ctx,
		fmt.Sprintf("update-%s-%d", updateID, time.Now().UnixNano()),
		file,
		"crisis_updates",
		storage.AllowImage...,
	)
	if err != nil {
		if storage.IsRejected(err) {
			return "", domain.NewValidationError("image", err.Error())
		}
		return "", err
	}
	return s.s3.GetPublicLinkKey(key), nil
}

func (s *updateService) removeImage(ctx context.Context, link string, updateID uuid.UUID) {
	if link == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, s.s3.GetObjectKeyFromLink(link)); err != nil {
		s.logger.WithError(err).WithField("update_id", updateID).Warn("failed to delete update image")
	}
}

func toDomainUpdate(u *entities.CrisisUpdate, withComments bool) *domain.CrisisUpdate {
	result := &domain.CrisisUpdate{
		ID:           u.ID.String(),
		CrisisPostID: u.CrisisPostID.String(),
		CreatorID:    u.CreatorID.String(),
		Title:        u.Title,
		Content:      u.Content,
		Image:        u.Image,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.CrisisPost != nil {
		result.CrisisTitle = u.CrisisPost.Title
	}
	if u.Creator != nil {
		result.CreatorName = u.Creator.Username
		result.CreatorEmail = u.Creator.Email
	}
	if withComments {
		result.Comments = toDomainComments(u.Comments)
		result.TotalComments = int64(len(u.Comments))
	}
	return result
}

func toDomainComments(comments []*entities.Comment) []*domain.Comment {
	result := make([]*domain.Comment, 0, len(comments))
	for _, c := range comments {
		result = append(result, toDomainComment(c))
	}
	return result
}

func toDomainComment(c *entities.Comment) *domain.Comment {
	result := &domain.Comment{
		ID:        c.ID.String(),
		UpdateID:  c.UpdateID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		result.UserName = c.User.Username
	}
	return result
}
