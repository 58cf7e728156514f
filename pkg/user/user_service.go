package user

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/mailing"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/storage"
	"github.com/DurjoyKumar177/CrisisAid-Backend/pkg/jwt"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const verificationTokenSize = 32

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		VerifyEmail(ctx context.Context, token string) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, actor domain.Actor) (*domain.User, error)
		UpdateProfile(ctx context.Context, actor domain.Actor, req domain.UpdateUserRequest) (*domain.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.ObjectStore
		mailer         mailing.Sender
		appURL         string
		logger         *logrus.Logger
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	s3 storage.ObjectStore,
	mailer mailing.Sender,
	appURL string,
	logger *logrus.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		mailer:         mailer,
		appURL:         strings.TrimRight(appURL, "/"),
		logger:         logger,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !utils.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.userRepository.GetUserByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !utils.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := gonanoid.New(verificationTokenSize)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	user := &entities.User{
		Username:          username,
		Email:             email,
		Password:          string(hash),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Role:              domain.RoleUser,
		VerificationToken: &token,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if utils.IsDuplicateKey(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.sendVerification(user, token)
	return toDomainUser(user), nil
}

func (s *userService) sendVerification(user *entities.User, token string) {
	log := s.logger.WithField("user_id", user.ID)

	subject, body, err := mailing.VerificationEmail(s.appURL, user.Username, token)
	if err != nil {
		log.WithError(err).Error("failed to render verification email")
		return
	}
	if err := s.mailer.SendMail(user.Email, subject, body); err != nil {
		log.WithError(err).Warn("failed to send verification email")
	}
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidVerifyToken
	}
	user, err := s.userRepository.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrInvalidVerifyToken
		}
		return nil, err
	}

	if err := s.userRepository.UpdateUser(ctx, user.ID, map[string]interface{}{
		"is_verified":        true,
		"verification_token": nil,
	}); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationToken = nil
	return toDomainUser(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrCredentialsNotMatch
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsNotMatch
	}
	if !user.IsVerified {
		return nil, domain.ErrAccountNotVerified
	}

	token, err := s.jwtService.GenerateTokenUser(domain.Actor{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  toDomainUser(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	user, err := s.current(ctx, actor)
	if err != nil {
		return nil, err
	}
	return toDomainUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor domain.Actor, req domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.current(ctx, actor)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	for column, value := range map[string]*string{
		"first_name":       req.FirstName,
		"last_name":        req.LastName,
		"phone":            req.Phone,
		"location":         req.Location,
		"occupation":       req.Occupation,
		"facebook_account": req.FacebookAccount,
	} {
		if value != nil {
			fields[column] = *value
		}
	}

	oldPicture := user.ProfilePicture
	if req.ProfilePicture != nil {
		link, err := s.uploadPicture(ctx, user.ID, req.ProfilePicture)
		if err != nil {
			return nil, err
		}
		fields["profile_picture"] = link
	}

	if len(fields) > 0 {
		if err := s.userRepository.UpdateUser(ctx, user.ID, fields); err != nil {
			return nil, err
		}
		if _, replaced := fields["profile_picture"]; replaced && oldPicture != "" {
			if err := s.s3.DeleteFile(ctx, s.s3.GetObjectKeyFromLink(oldPicture)); err != nil {
				s.logger.WithError(err).WithField("user_id", user.ID).Warn("failed to delete profile picture")
			}
		}
	}

	return s.Me(ctx, actor)
}

func (s *userService) current(ctx context.Context, actor domain.Actor) (*entities.User, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.userRepository.GetUserByID(ctx, actor.ID)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) uploadPicture(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	key, err := s.s3.UploadFile(
		ctx,
		fmt.Sprintf("profile-%s-%d", userID, time.Now().UnixNano()),
		file,
		"profile_pictures",
		storage.AllowImage...,
	)
	if err != nil {
		if storage.IsRejected(err) {
			return "", domain.NewValidationError("profile_picture", err.Error())
		}
		return "", err
	}
	return s.s3.GetPublicLinkKey(key), nil
}

func toDomainUser(u *entities.User) *domain.User {
	return &domain.User{
		ID:              u.ID.String(),
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Location:        u.Location,
		Occupation:      u.Occupation,
		FacebookAccount: u.FacebookAccount,
		ProfilePicture:  u.ProfilePicture,
		Role:            u.Role,
		IsAdmin:         u.IsAdmin,
		IsVerified:      u.IsVerified,
		CreatedAt:       u.CreatedAt,
	}
}
