package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arzan03/pointboard/internal/auth"
	"github.com/arzan03/pointboard/internal/cache"
	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/repository"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

// AccountService registers accounts and issues tokens.
type AccountService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hasher auth.PasswordHasher
	log    logging.Logger
	now    func() time.Time

	leaderboard cache.LeaderboardCache
}

type AccountServiceOption func(*AccountService)

// WithRegistrationCache drops the cached leaderboard whenever a new account
// is registered.
func WithRegistrationCache(c cache.LeaderboardCache) AccountServiceOption {
	return func(s *AccountService) { s.leaderboard = c }
}

func NewAccountService(users repository.UserRepository, tokens TokenIssuer, hasher auth.PasswordHasher, log logging.Logger, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{users: users, tokens: tokens, hasher: hasher, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type LoginResult struct {
	Token    string `json:"token"`
	UserRole string `json:"userRole"`
}

// Register creates a "user"-role account with zero points. Registration
// never grants the admin role.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) *Response {
	const op = "account.register"
	resp := newResponse()

	if msg, ok := checkInput(req); !ok {
		return resp.fail(http.StatusBadRequest, msg)
	}

	// Check if user already exists
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return resp.fail(http.StatusConflict, MsgEmailTaken)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		s.log.Error(ctx, "register lookup failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error(ctx, "register hash failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Points:    0,
		UserRole:  models.RoleUser,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return resp.fail(http.StatusConflict, MsgEmailTaken)
		}
		s.log.Error(ctx, "register insert failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}

	s.log.Info(ctx, "account registered", "op", op, "user_id", user.ID.Hex())
	resp.Message = MsgRegistered
	resp.Body = user
	return resp
}

// Login checks the credentials and returns a signed token with the role.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) *Response {
	const op = "account.login"
	resp := newResponse()

	if msg, ok := checkInput(req); !ok {
		return resp.fail(http.StatusBadRequest, msg)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return resp.fail(http.StatusUnauthorized, MsgBadCredentials)
	}
	if err != nil {
		s.log.Error(ctx, "login lookup failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}

	ok, err := s.hasher.Compare(req.Password, user.Password)
	if err != nil {
		s.log.Error(ctx, "login compare failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}
	if !ok {
		return resp.fail(http.StatusUnauthorized, MsgBadCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID.Hex(), user.UserRole)
	if err != nil {
		s.log.Error(ctx, "login token failed", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}

	resp.Message = MsgLoggedIn
	resp.Body = LoginResult{Token: token, UserRole: user.UserRole}
	return resp
}
