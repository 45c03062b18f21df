package contest

import (
	"aurum/helpers"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
)

// Current returns the active contest summary, or null when none is
// running.
func Current(c *fiber.Ctx) error {
	telegramID := int64(c.QueryInt("telegram_id"))

	summary, err := services.CurrentContest(telegramID)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	if summary == nil {
		return c.JSON(nil)
	}
	return c.JSON(summary)
}

type buyTicketRequest struct {
	ContestID  uint  `json:"contest_id"`
	TelegramID int64 `json:"telegram_id"`
	Quantity   int   `json:"quantity"`
	UserID     uint  `json:"user_id"`
}

func BuyTicket(c *fiber.Ctx) error {
	var req buyTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.ContestID == 0 || req.TelegramID == 0 || req.Quantity < 1 {
		return helpers.BadRequest(c, "Неверные данные для покупки билета")
	}

	newBalance, err := services.BuyTickets(c.UserContext(), req.ContestID, req.TelegramID, req.Quantity)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "newBalance": newBalance})
}
