package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type (
	JWTService interface {
		GenerateTokenUser(actor domain.Actor) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetActorByToken(token string) (domain.Actor, error)
	}

	jwtUserClaim struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		IsAdmin  bool   `json:"is_admin"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "CRISISAID",
		ttl:       ttl,
	}
}

func (j *jwtService) GenerateTokenUser(actor domain.Actor) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		actor.ID.String(),
		actor.Username,
		actor.Role,
		actor.IsAdmin,
		jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetActorByToken(token string) (domain.Actor, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, domain.ErrTokenExpired
		}
		return domain.Actor{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Actor{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.Issuer != j.issuer {
		return domain.Actor{}, domain.ErrTokenInvalid
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil || id == uuid.Nil {
		return domain.Actor{}, domain.ErrTokenInvalid
	}

	return domain.Actor{
		ID:       id,
		Username: claims.Username,
		Role:     claims.Role,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
