package game

import (
	"aurum/games"
	"aurum/helpers"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
)

type towerStartRequest struct {
	TelegramID int64 `json:"telegram_id"`
	Bet        int64 `json:"bet"`
}

func TowerStart(c *fiber.Ctx) error {
	var req towerStartRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 {
		return helpers.BadRequest(c, "telegram_id является обязательным")
	}
	if req.Bet < games.TowerMinBet {
		return helpers.BadRequest(c, "Минимальная ставка 15")
	}

	result, err := services.StartTower(c.UserContext(), req.TelegramID, req.Bet)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}

type towerSelectRequest struct {
	TelegramID int64  `json:"telegram_id"`
	SessionID  string `json:"sessionId"`
	Col        int    `json:"col"`
}

func TowerSelect(c *fiber.Ctx) error {
	var req towerSelectRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.SessionID == "" {
		return helpers.BadRequest(c, "sessionId является обязательным")
	}
	if req.Col < 0 || req.Col >= games.TowerCols {
		return helpers.BadRequest(c, "col must be 0 or 1")
	}

	result, err := services.SelectTower(c.UserContext(), req.TelegramID, req.SessionID, req.Col)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}

func TowerCashout(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.SessionID == "" {
		return helpers.BadRequest(c, "sessionId является обязательным")
	}

	result, err := services.CashoutTower(c.UserContext(), req.TelegramID, req.SessionID)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}
