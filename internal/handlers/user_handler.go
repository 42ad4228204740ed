package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/services"
)

// UserOperations is the slice of services.UserService the routes need.
type UserOperations interface {
	GetAllUserPoints(ctx context.Context) ([]models.PointsEntry, error)
	UpdateByUserID(ctx context.Context, authHeader string, req services.UpdateProfileRequest) *services.Response
	UpdatePoints(ctx context.Context, authHeader string, req services.UpdatePointsRequest) *services.Response
	DeleteByUserID(ctx context.Context, authHeader string, req services.DeleteAccountRequest) *services.Response
	UpdatePassword(ctx context.Context, authHeader string, req services.UpdatePasswordRequest) *services.Response
}

type UserHandler struct {
	users UserOperations
}

func NewUserHandler(users UserOperations) *UserHandler {
	return &UserHandler{users: users}
}

// Register mounts the user routes on r.
func (h *UserHandler) Register(r fiber.Router) {
	r.Get("/points", h.Leaderboard)
	r.Put("/", h.UpdateProfile)
	r.Put("/points", h.UpdatePoints)
	r.Delete("/", h.DeleteAccount)
	r.Put("/password", h.UpdatePassword)
}

func (h *UserHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.users.GetAllUserPoints(c.UserContext())
	if err != nil {
		return write(c, &services.Response{Code: fiber.StatusInternalServerError, Message: services.MsgServerError})
	}
	return write(c, &services.Response{Code: fiber.StatusOK, Message: services.MsgLeaderboard, Body: entries})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileRequest
	if resp := parseBody(c, &req); resp != nil {
		return write(c, resp)
	}
	return write(c, h.users.UpdateByUserID(c.UserContext(), authHeader(c), req))
}

func (h *UserHandler) UpdatePoints(c *fiber.Ctx) error {
	var req services.UpdatePointsRequest
	if resp := parseBody(c, &req); resp != nil {
		return write(c, resp)
	}
	return write(c, h.users.UpdatePoints(c.UserContext(), authHeader(c), req))
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	var req services.DeleteAccountRequest
	if resp := parseBody(c, &req); resp != nil {
		return write(c, resp)
	}
	return write(c, h.users.DeleteByUserID(c.UserContext(), authHeader(c), req))
}

func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	var req services.UpdatePasswordRequest
	if resp := parseBody(c, &req); resp != nil {
		return write(c, resp)
	}
	return write(c, h.users.UpdatePassword(c.UserContext(), authHeader(c), req))
}
