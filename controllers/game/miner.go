package game

import (
	"aurum/games"
	"aurum/helpers"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
)

type minerStartRequest struct {
	TelegramID int64 `json:"telegram_id"`
	Bet        int64 `json:"bet"`
}

func MinerStart(c *fiber.Ctx) error {
	var req minerStartRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.Bet <= 0 {
		return helpers.BadRequest(c, "Некорректная ставка")
	}

	result, err := services.StartMiner(c.UserContext(), req.TelegramID, req.Bet)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}

type minerSelectRequest struct {
	TelegramID int64  `json:"telegram_id"`
	SessionID  string `json:"sessionId"`
	Cell       int    `json:"cell"`
}

func MinerSelect(c *fiber.Ctx) error {
	var req minerSelectRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.SessionID == "" {
		return helpers.BadRequest(c, "sessionId является обязательным")
	}
	if req.Cell < 0 || req.Cell >= games.MinerCells {
		return helpers.BadRequest(c, "cell must be in [0,12)")
	}

	result, err := services.SelectMiner(c.UserContext(), req.TelegramID, req.SessionID, req.Cell)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}

type sessionRequest struct {
	TelegramID int64  `json:"telegram_id"`
	SessionID  string `json:"sessionId"`
}

func MinerCashout(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.SessionID == "" {
		return helpers.BadRequest(c, "sessionId является обязательным")
	}

	result, err := services.CashoutMiner(c.UserContext(), req.TelegramID, req.SessionID)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(result)
}
