package game

import (
	"aurum/helpers"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
)

type upgradeRequest struct {
	TelegramID       int64 `json:"telegram_id"`
	UserID           uint  `json:"user_id"`
	YourItemUniqueID uint  `json:"yourItemUniqueId"`
	DesiredItemID    uint  `json:"desiredItemId"`
}

// Upgrade stakes an owned inventory entry on a better item. No currency
// moves through the ledger here; the entry is the wager.
func Upgrade(c *fiber.Ctx) error {
	var req upgradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.UserID == 0 || req.YourItemUniqueID == 0 || req.DesiredItemID == 0 {
		return helpers.BadRequest(c, "Неверные данные для апгрейда")
	}

	result, err := services.Upgrade(c.UserContext(), req.TelegramID, req.UserID, req.YourItemUniqueID, req.DesiredItemID)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}
