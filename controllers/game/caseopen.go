package game

import (
	"encoding/json"

	"aurum/cache"
	"aurum/database"
	"aurum/helpers"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type openCaseRequest struct {
	UserID     uint  `json:"user_id"`
	Quantity   int   `json:"quantity"`
	TelegramID int64 `json:"telegram_id"`
}

// OpenCase charges the fixed case price per unit up front, then draws
// the won items and writes them into the inventory.
func OpenCase(c *fiber.Ctx) error {
	var req openCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.UserID == 0 || req.TelegramID == 0 || req.Quantity < 1 {
		return helpers.BadRequest(c, "Неверные данные для открытия кейса")
	}

	newBalance, wonItems, err := services.OpenCase(c.UserContext(), req.TelegramID, req.UserID, req.Quantity)
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"newBalance": newBalance,
		"wonItems":   wonItems,
	})
}

// CaseItemsFull lists the case loadout (or the full catalog while the
// loadout is empty). Served through the response cache.
func CaseItemsFull(c *fiber.Ctx) error {
	return serveCached(c, cache.KeyCaseItems, func(tx *gorm.DB) (any, error) {
		return services.Catalog(tx)
	})
}

func serveCached(c *fiber.Ctx, key string, load func(tx *gorm.DB) (any, error)) error {
	ctx := c.UserContext()

	if raw, ok := cache.Get(ctx, key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(raw)
	}

	payload, err := load(database.DB)
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	cache.Set(ctx, key, raw)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
