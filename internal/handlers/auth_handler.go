package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/services"
)

type AccountOperations interface {
	Register(ctx context.Context, req services.RegisterRequest) *services.Response
	Login(ctx context.Context, req services.LoginRequest) *services.Response
}

type AuthHandler struct {
	accounts AccountOperations
}

func NewAuthHandler(accounts AccountOperations) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(r fiber.Router) {
	r.Post("/register", h.RegisterAccount)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) RegisterAccount(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return write(c, &services.Response{Code: fiber.StatusBadRequest, Message: services.MsgMissingData})
	}
	return write(c, h.accounts.Register(c.UserContext(), req))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return write(c, &services.Response{Code: fiber.StatusBadRequest, Message: services.MsgMissingData})
	}
	return write(c, h.accounts.Login(c.UserContext(), req))
}
