package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/helpers"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/modules/users"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperrors.New(apperrors.Unauthenticated, "Please enter valid credentials")

// RegisterInput is the payload of the registerUser mutation.
type RegisterInput struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Service handles sign-up and the token mutations.
type Service struct {
	users  *users.Service
	issuer *auth.Issuer
	cost   int
}

func NewService(users *users.Service, issuer *auth.Issuer) *Service {
	return &Service{users: users, issuer: issuer, cost: bcrypt.DefaultCost}
}

// Register creates an account. It does not log the new user in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := helpers.Validate(input); err != nil {
		return nil, err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPwd),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("User registered")
	return &user, nil
}

// ObtainToken checks the credentials and issues a token for the user.
func (s *Service) ObtainToken(ctx context.Context, username, password string) (*auth.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		monitoring.LoginFailure.WithLabelValues("bad_password").Inc()
		return nil, errInvalidCredentials
	}

	return s.issuer.Issue(user.ID, user.Username)
}

// Verify returns the claims of a valid token.
func (s *Service) Verify(token string) (auth.Payload, error) {
	return s.issuer.Verify(token)
}

// Refresh extends a token within its refresh window.
func (s *Service) Refresh(token string) (*auth.Token, error) {
	return s.issuer.Refresh(token)
}
