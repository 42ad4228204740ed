package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/services"
)

func authHeader(c *fiber.Ctx) string {
	return c.Get(fiber.HeaderAuthorization)
}

// parseBody decodes the JSON body into out. On failure it returns the
// envelope to send: 401 when there is no Authorization header at all, 400
// otherwise. An empty body decodes to the zero request.
func parseBody(c *fiber.Ctx, out any) *services.Response {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		if authHeader(c) == "" {
			return &services.Response{Code: fiber.StatusUnauthorized, Message: services.MsgMissingAuth}
		}
		return &services.Response{Code: fiber.StatusBadRequest, Message: services.MsgMissingData}
	}
	return nil
}

// write maps the envelope onto the HTTP response.
func write(c *fiber.Ctx, resp *services.Response) error {
	return c.Status(resp.Code).JSON(resp)
}
