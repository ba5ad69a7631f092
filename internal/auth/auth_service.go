package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/auth/errors"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/middleware"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user"
	usererrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL matches the session length the web client expects before
// forcing a fresh login.
const tokenTTL = 24 * time.Hour

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*Identity, error)
	Verify(ctx context.Context, tokenString string) (*Identity, error)
}

type service struct {
	users  user.Repository
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Repository, secret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		users:  users,
		secret: []byte(secret),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	token, err := s.signToken(u)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return nil, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
	)

	return &LoginResponse{
		Token: token,
		User: Identity{
			UserID:   u.ID.String(),
			Username: u.Username,
			Role:     u.Role,
		},
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	role := req.Role
	if role == "" {
		role = middleware.RoleEmployee
	}
	if role != middleware.RoleAdmin && role != middleware.RoleEmployee {
		return nil, usererrors.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Password:  string(hash),
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.String("role", u.Role),
	)

	return &Identity{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}, nil
}

func (s *service) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, err
	}

	return &Identity{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}, nil
}

func (s *service) signToken(u *user.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
