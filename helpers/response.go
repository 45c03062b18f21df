package helpers

import (
	"errors"

	"aurum/ledger"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
)

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// HTTPError maps the service error taxonomy onto status codes with the
// `{"error": ...}` body the client expects.
func HTTPError(c *fiber.Ctx, err error) error {
	var apiErr *ledger.APIError

	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Недостаточно средств"})
	case errors.As(err, &apiErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apiErr.Error()})
	case errors.Is(err, ledger.ErrUnreachable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Не удалось связаться с сервером бота"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
