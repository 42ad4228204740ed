package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/arzan03/pointboard/internal/auth"
	"github.com/arzan03/pointboard/internal/cache"
	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/repository"
	"github.com/arzan03/pointboard/internal/storage"
	"github.com/arzan03/pointboard/internal/validation"
)

// UserService handles profile, points, deletion and password changes for
// existing accounts. Each call is independent; nothing is shared between
// requests beyond the injected collaborators.
type UserService struct {
	users       repository.UserRepository
	tokens      auth.TokenVerifier
	hasher      auth.PasswordHasher
	log         logging.Logger
	leaderboard cache.LeaderboardCache
	archive     storage.AccountArchive
}

type UserServiceOption func(*UserService)

// WithLeaderboardCache serves GetAllUserPoints through c.
func WithLeaderboardCache(c cache.LeaderboardCache) UserServiceOption {
	return func(s *UserService) { s.leaderboard = c }
}

// WithAccountArchive copies accounts to a before they are deleted.
func WithAccountArchive(a storage.AccountArchive) UserServiceOption {
	return func(s *UserService) { s.archive = a }
}

func NewUserService(users repository.UserRepository, tokens auth.TokenVerifier, hasher auth.PasswordHasher, log logging.Logger, opts ...UserServiceOption) *UserService {
	s := &UserService{users: users, tokens: tokens, hasher: hasher, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllUserPoints lists every "user"-role account by points, highest first,
// with only username and points populated.
func (s *UserService) GetAllUserPoints(ctx context.Context) ([]models.PointsEntry, error) {
	if s.leaderboard != nil {
		if entries, ok := s.leaderboard.Get(ctx); ok {
			return entries, nil
		}
	}

	entries, err := s.users.ListByRole(ctx, models.RoleUser)
	if err != nil {
		s.log.Error(ctx, "get all user points error", "op", "user.leaderboard", "err", err)
		return nil, err
	}

	if s.leaderboard != nil {
		s.leaderboard.Set(ctx, entries)
	}
	return entries, nil
}

// UpdateByUserID replaces username and email of the target account.
func (s *UserService) UpdateByUserID(ctx context.Context, authHeader string, req UpdateProfileRequest) *Response {
	const op = "user.update"
	resp := newResponse()

	claims, ok := s.authenticate(ctx, op, authHeader, resp)
	if !ok {
		return resp
	}
	if !selfOrAdmin(claims, req.ID) {
		return resp.fail(http.StatusForbidden, MsgForbidden)
	}
	if msg, ok := checkInput(req); !ok {
		return resp.fail(http.StatusBadRequest, msg)
	}

	user, ok := s.load(ctx, op, req.ID, resp)
	if !ok {
		return resp
	}

	if user.Username == req.Username && user.Email == req.Email {
		return resp.fail(http.StatusNotModified, MsgNotModified)
	}

	user.Username = req.Username
	user.Email = req.Email
	if !s.save(ctx, op, user, resp) {
		return resp
	}
	s.invalidateLeaderboard(ctx)

	resp.Message = MsgProfileUpdated
	resp.Body = user
	return resp
}

// UpdatePoints overwrites the points balance of the target account.
func (s *UserService) UpdatePoints(ctx context.Context, authHeader string, req UpdatePointsRequest) *Response {
	const op = "user.points"
	resp := newResponse()

	claims, ok := s.authenticate(ctx, op, authHeader, resp)
	if !ok {
		return resp
	}
	if !selfOrAdmin(claims, req.ID) {
		return resp.fail(http.StatusForbidden, MsgForbidden)
	}
	if msg, ok := checkInput(req); !ok {
		return resp.fail(http.StatusBadRequest, msg)
	}

	user, ok := s.load(ctx, op, req.ID, resp)
	if !ok {
		return resp
	}

	user.Points = req.Points
	if !s.save(ctx, op, user, resp) {
		return resp
	}
	s.invalidateLeaderboard(ctx)

	resp.Message = MsgPointsUpdated
	resp.Body = user
	return resp
}

// DeleteByUserID removes the target account once its current password is
// confirmed.
func (s *UserService) DeleteByUserID(ctx context.Context, authHeader string, req DeleteAccountRequest) *Response {
	const op = "user.delete"
	resp := newResponse()

	claims, ok := s.authenticate(ctx, op, authHeader, resp)
	if !ok {
		return resp
	}
	if !selfOrAdmin(claims, req.ID) {
		return resp.fail(http.StatusForbidden, MsgForbidden)
	}

	user, ok := s.load(ctx, op, req.ID, resp)
	if !ok {
		return resp
	}
	if !s.checkPassword(ctx, op, req.Password, user, resp) {
		return resp
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, user); err != nil {
			s.log.Warn(ctx, "archive deleted account failed", "op", op, "user_id", user.ID.Hex(), "err", err)
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return resp.fail(http.StatusNotFound, MsgUserNotFound)
		}
		s.log.Error(ctx, "delete by user id error", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}
	s.invalidateLeaderboard(ctx)

	resp.Message = MsgAccountDeleted
	return resp
}

// UpdatePassword replaces the caller's password hash. Only the account owner
// may do this; the admin role grants nothing here.
func (s *UserService) UpdatePassword(ctx context.Context, authHeader string, req UpdatePasswordRequest) *Response {
	const op = "user.password"
	resp := newResponse()

	claims, ok := s.authenticate(ctx, op, authHeader, resp)
	if !ok {
		return resp
	}
	if claims.UserID != req.ID {
		return resp.fail(http.StatusForbidden, MsgForbidden)
	}

	user, ok := s.load(ctx, op, req.ID, resp)
	if !ok {
		return resp
	}
	if !s.checkPassword(ctx, op, req.Password, user, resp) {
		return resp
	}
	if req.NewPassword == "" {
		return resp.fail(http.StatusBadRequest, MsgMissingData)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.log.Error(ctx, "update password error", "op", op, "err", err)
		return resp.fail(http.StatusInternalServerError, MsgServerError)
	}
	user.Password = hash
	if !s.save(ctx, op, user, resp) {
		return resp
	}

	resp.Message = MsgPasswordChange
	resp.Body = user
	return resp
}

// authenticate decodes the bearer token. A missing header is a 401; any
// decoding or verification failure is reported as a server error.
func (s *UserService) authenticate(ctx context.Context, op, header string, resp *Response) (*auth.Claims, bool) {
	token, err := auth.BearerToken(header)
	if errors.Is(err, auth.ErrMissingToken) {
		resp.fail(http.StatusUnauthorized, MsgMissingAuth)
		return nil, false
	}
	if err == nil {
		var claims *auth.Claims
		if claims, err = s.tokens.ParseToken(token); err == nil {
			return claims, true
		}
	}
	s.log.Error(ctx, "token verification failed", "op", op, "err", err)
	resp.fail(http.StatusInternalServerError, MsgServerError)
	return nil, false
}

func selfOrAdmin(claims *auth.Claims, targetID string) bool {
	return claims.IsAdmin() || claims.UserID == targetID
}

// checkInput maps validation failures onto the user-facing message. Missing
// fields take precedence over a malformed email.
func checkInput(req any) (string, bool) {
	err := validation.Struct(req)
	if err == nil {
		return "", true
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) && !verrs.Has("required") && verrs.Has(validation.TagLooseEmail) {
		return MsgBadEmail, false
	}
	return MsgMissingData, false
}

func (s *UserService) load(ctx context.Context, op, id string, resp *Response) (*models.User, bool) {
	user, err := s.users.FindByID(ctx, id)
	switch {
	case err == nil:
		return user, true
	case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, repository.ErrInvalidID):
		resp.fail(http.StatusNotFound, MsgUserNotFound)
	default:
		s.log.Error(ctx, "load user failed", "op", op, "err", err)
		resp.fail(http.StatusInternalServerError, MsgServerError)
	}
	return nil, false
}

func (s *UserService) save(ctx context.Context, op string, user *models.User, resp *Response) bool {
	err := s.users.Save(ctx, user)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrUserNotFound):
		resp.fail(http.StatusNotFound, MsgUserNotFound)
	default:
		s.log.Error(ctx, "save user failed", "op", op, "err", err)
		resp.fail(http.StatusInternalServerError, MsgServerError)
	}
	return false
}

func (s *UserService) checkPassword(ctx context.Context, op, plain string, user *models.User, resp *Response) bool {
	ok, err := s.hasher.Compare(plain, user.Password)
	if err != nil {
		s.log.Error(ctx, "compare password failed", "op", op, "err", err)
		resp.fail(http.StatusInternalServerError, MsgServerError)
		return false
	}
	if !ok {
		resp.fail(http.StatusUnauthorized, MsgWrongPassword)
		return false
	}
	return true
}

func (s *UserService) invalidateLeaderboard(ctx context.Context) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}
}
