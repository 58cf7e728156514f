package volunteer

import (
	"context"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/mailing"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/crisis"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/policy"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type (
	VolunteerService interface {
		Apply(ctx context.Context, actor domain.Actor, req domain.ApplyVolunteerRequest) (*domain.VolunteerApplication, error)
		GetMyApplications(ctx context.Context, actor domain.Actor) ([]*domain.VolunteerApplication, error)
		GetApplicationsForPost(ctx context.Context, actor domain.Actor, postID string) ([]*domain.VolunteerApplication, error)
		ApproveApplication(ctx context.Context, actor domain.Actor, id string) (*domain.VolunteerApplication, error)
		RejectApplication(ctx context.Context, actor domain.Actor, id string) (*domain.VolunteerApplication, error)
	}

	volunteerService struct {
		volunteerRepository VolunteerRepository
		crisisRepository    crisis.CrisisRepository
		mailer              mailing.Sender
		logger              *logrus.Logger
	}
)

func NewVolunteerService(
	volunteerRepository VolunteerRepository,
	crisisRepository crisis.CrisisRepository,
	mailer mailing.Sender,
	logger *logrus.Logger,
) VolunteerService {
	return &volunteerService{
		volunteerRepository: volunteerRepository,
		crisisRepository:    crisisRepository,
		mailer:              mailer,
		logger:              logger,
	}
}

func (s *volunteerService) Apply(ctx context.Context, actor domain.Actor, req domain.ApplyVolunteerRequest) (*domain.VolunteerApplication, error) {
	if err := policy.Authorize(actor, policy.Apply, policy.Resource{}); err != nil {
		return nil, err
	}
	post, err := crisis.FindPost(ctx, s.crisisRepository, req.CrisisPostID)
	if err != nil {
		return nil, err
	}
	if err := workflow.RequireApprovedPost(domain.Status(post.Status)); err != nil {
		return nil, err
	}

	application := &entities.VolunteerApplication{
		UserID:       actor.ID,
		CrisisPostID: post.ID,
		Message:      req.Message,
		Status:       workflow.Initial().String(),
	}
	if err := s.volunteerRepository.CreateApplication(ctx, application); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, err
	}

	created, err := s.volunteerRepository.GetApplicationByID(ctx, application.ID)
	if err != nil {
		return nil, err
	}
	return toDomainApplication(created), nil
}

func (s *volunteerService) GetMyApplications(ctx context.Context, actor domain.Actor) ([]*domain.VolunteerApplication, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	applications, err := s.volunteerRepository.GetApplicationsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toDomainApplications(applications), nil
}

func (s *volunteerService) GetApplicationsForPost(ctx context.Context, actor domain.Actor, postID string) ([]*domain.VolunteerApplication, error) {
	post, err := crisis.FindPost(ctx, s.crisisRepository, postID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ListApplications, policy.PostResource(post)); err != nil {
		return nil, err
	}

	applications, err := s.volunteerRepository.GetApplicationsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return toDomainApplications(applications), nil
}

func (s *volunteerService) ApproveApplication(ctx context.Context, actor domain.Actor, id string) (*domain.VolunteerApplication, error) {
	return s.review(ctx, actor, id, domain.StatusApproved)
}

func (s *volunteerService) RejectApplication(ctx context.Context, actor domain.Actor, id string) (*domain.VolunteerApplication, error) {
	return s.review(ctx, actor, id, domain.StatusRejected)
}

func (s *volunteerService) review(ctx context.Context, actor domain.Actor, rawID string, to domain.Status) (*domain.VolunteerApplication, error) {
	application, err := s.findApplication(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReviewApplication, policy.ApplicationResource(application, application.CrisisPost)); err != nil {
		return nil, err
	}

	from := domain.Status(application.Status)
	if err := workflow.ApplicationStatus.Transition(from, to); err != nil {
		return nil, err
	}
	if err := s.volunteerRepository.TransitionStatus(ctx, application.ID, from, to); err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	application.Status = to.String()

	s.notify(application)
	return toDomainApplication(application), nil
}

func (s *volunteerService) findApplication(ctx context.Context, rawID string) (*entities.VolunteerApplication, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}
	application, err := s.volunteerRepository.GetApplicationByID(ctx, id)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return application, nil
}

// notify tells the volunteer about the decision. Delivery problems are
// logged and never undo the transition.
func (s *volunteerService) notify(application *entities.VolunteerApplication) {
	if s.mailer == nil || application.User == nil || application.User.Email == "" {
		return
	}
	log := s.logger.WithFields(logrus.Fields{
		"application_id": application.ID,
		"status":         application.Status,
	})

	subject, body, err := mailing.ApplicationDecisionEmail(application.User.Username, application.CrisisPost.Title, application.Status)
	if err != nil {
		log.WithError(err).Warn("failed to render application decision email")
		return
	}
	if err := s.mailer.SendMail(application.User.Email, subject, body); err != nil {
		log.WithError(err).Warn("failed to send application decision email")
	}
}

func toDomainApplications(applications []*entities.VolunteerApplication) []*domain.VolunteerApplication {
	result := make([]*domain.VolunteerApplication, 0, len(applications))
	for _, a := range applications {
		result = append(result, toDomainApplication(a))
	}
	return result
}

func toDomainApplication(a *entities.VolunteerApplication) *domain.VolunteerApplication {
	result := &domain.VolunteerApplication{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		CrisisPostID: a.CrisisPostID.String(),
		Message:      a.Message,
		Status:       domain.Status(a.Status),
		AppliedAt:    a.AppliedAt,
	}
	if a.User != nil {
		result.Username = a.User.Username
		result.Email = a.User.Email
		result.Phone = a.User.Phone
	}
	if a.CrisisPost != nil {
		result.CrisisTitle = a.CrisisPost.Title
	}
	return result
}
