package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/repository"
	"github.com/arzan03/pointboard/internal/services"
)

// UserDirectory is the read side of the user store the admin routes need.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// AdminHandler serves read-only account lookups. Routes are expected to sit
// behind middleware.AdminMiddleware.
type AdminHandler struct {
	users UserDirectory
	log   logging.Logger
}

func NewAdminHandler(users UserDirectory, log logging.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

func (h *AdminHandler) Register(r fiber.Router) {
	r.Get("/users", h.ListUsers)
	r.Get("/users/:id", h.GetUserByID)
}

// ListUsers returns every account, without password hashes.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		h.log.Error(c.UserContext(), "admin list users error", "op", "admin.users", "err", err)
		return write(c, &services.Response{Code: fiber.StatusInternalServerError, Message: services.MsgServerError})
	}
	return write(c, &services.Response{Code: fiber.StatusOK, Body: users})
}

// GetUserByID returns one account, without its password hash.
func (h *AdminHandler) GetUserByID(c *fiber.Ctx) error {
	user, err := h.users.FindByID(c.UserContext(), c.Params("id"))
	switch {
	case err == nil:
		return write(c, &services.Response{Code: fiber.StatusOK, Body: user})
	case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, repository.ErrInvalidID):
		return write(c, &services.Response{Code: fiber.StatusNotFound, Message: services.MsgUserNotFound})
	default:
		h.log.Error(c.UserContext(), "admin get user error", "op", "admin.user", "err", err)
		return write(c, &services.Response{Code: fiber.StatusInternalServerError, Message: services.MsgServerError})
	}
}
