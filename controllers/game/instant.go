package game

import (
	"aurum/cache"
	"aurum/games"
	"aurum/helpers"
	"aurum/models"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type instantRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Bet        int64  `json:"bet"`
	Choice     string `json:"choice"`
}

func parseInstant(c *fiber.Ctx) (*instantRequest, error) {
	var req instantRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 || req.Bet <= 0 {
		return nil, helpers.BadRequest(c, "Некорректная ставка")
	}
	return &req, nil
}

// Instant games settle in two ledger moves: the bet is debited first, so
// the ledger enforces funds before any outcome is rolled, and the gross
// payout (if any) is credited after.

func Coinflip(c *fiber.Ctx) error {
	req, err := parseInstant(c)
	if err != nil {
		return err
	}
	if !games.ValidCoinChoice(req.Choice) {
		return helpers.BadRequest(c, "choice must be heads or tails")
	}

	newBalance, err := services.Settle(c.UserContext(), req.TelegramID, -req.Bet, "coinflip_bet", nil)
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	result, win := services.Eng.Coinflip(req.Choice)
	if payout := games.CoinflipPayout(req.Bet, win); payout > 0 {
		newBalance, err = services.CreditWin(c.UserContext(), req.TelegramID, payout, "coinflip_win")
		if err != nil {
			return helpers.HTTPError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"result":     result,
		"win":        win,
		"newBalance": newBalance,
	})
}

func RPS(c *fiber.Ctx) error {
	req, err := parseInstant(c)
	if err != nil {
		return err
	}
	if !games.ValidRPSChoice(req.Choice) {
		return helpers.BadRequest(c, "choice must be rock, paper or scissors")
	}

	newBalance, err := services.Settle(c.UserContext(), req.TelegramID, -req.Bet, "rps_bet", nil)
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	computer, outcome := services.Eng.RPS(req.Choice)
	if payout := games.RPSPayout(req.Bet, outcome); payout > 0 {
		newBalance, err = services.CreditWin(c.UserContext(), req.TelegramID, payout, "rps_"+outcome)
		if err != nil {
			return helpers.HTTPError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"computerChoice": computer,
		"outcome":        outcome,
		"newBalance":     newBalance,
	})
}

func Slots(c *fiber.Ctx) error {
	req, err := parseInstant(c)
	if err != nil {
		return err
	}

	newBalance, err := services.Settle(c.UserContext(), req.TelegramID, -req.Bet, "slots_bet", nil)
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	reels := services.Eng.SpinSlots()
	multiplier := games.SlotsMultiplier(reels)
	payout := req.Bet * multiplier
	if payout > 0 {
		newBalance, err = services.CreditWin(c.UserContext(), req.TelegramID, payout, "slots_win")
		if err != nil {
			return helpers.HTTPError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"reels":      reels,
		"multiplier": multiplier,
		"payout":     payout,
		"newBalance": newBalance,
	})
}

// Settings returns the game feature flags. They gate the client UI only;
// no wager path re-checks them.
func Settings(c *fiber.Ctx) error {
	return serveCached(c, cache.KeyGameSettings, func(tx *gorm.DB) (any, error) {
		var rows []models.GameSetting
		if err := tx.Find(&rows).Error; err != nil {
			return nil, err
		}
		flags := make(map[string]string, len(rows))
		for _, row := range rows {
			flags[row.Key] = row.Value
		}
		return flags, nil
	})
}
