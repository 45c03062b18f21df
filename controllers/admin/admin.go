package admin

import (
	"aurum/cache"
	"aurum/database"
	"aurum/helpers"
	"aurum/models"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Users(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("id DESC").Find(&users).Error; err != nil {
		return helpers.HTTPError(c, err)
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":          u.ID,
			"telegram_id": u.TelegramID,
			"username":    u.Username,
			"balance":     u.Balance,
		})
	}
	return c.JSON(out)
}

type setBalanceRequest struct {
	UserID     uint  `json:"userId"`
	NewBalance int64 `json:"newBalance"`
}

// SetBalance overrides the cached balance mirror. It does not touch the
// ledger; the console uses it to correct drift after reconciliation.
func SetBalance(c *fiber.Ctx) error {
	var req setBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}

	result := database.DB.Model(&models.User{}).
		Where("id = ?", req.UserID).
		Update("balance", req.NewBalance)
	if result.Error != nil {
		return helpers.HTTPError(c, result.Error)
	}
	return c.JSON(fiber.Map{"success": true, "changes": result.RowsAffected})
}

func Items(c *fiber.Ctx) error {
	items, err := services.AllItems()
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(items)
}

func CaseItems(c *fiber.Ctx) error {
	var ids []uint
	err := database.DB.Model(&models.CaseItem{}).
		Where("case_id = ?", 1).
		Pluck("item_id", &ids).Error
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(ids)
}

type setCaseItemsRequest struct {
	ItemIDs []uint `json:"itemIds"`
}

// SetCaseItems replaces the case loadout wholesale. An empty list leaves
// the full-catalog fallback in force.
func SetCaseItems(c *fiber.Ctx) error {
	var req setCaseItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", 1).Delete(&models.CaseItem{}).Error; err != nil {
			return err
		}
		for _, itemID := range req.ItemIDs {
			if err := tx.Create(&models.CaseItem{CaseID: 1, ItemID: itemID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	cache.Invalidate(c.UserContext(), cache.KeyCaseItems)
	return c.JSON(fiber.Map{"success": true})
}

type setSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

func SetGameSettings(c *fiber.Ctx) error {
	var req setSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if len(req.Settings) == 0 {
		return helpers.BadRequest(c, "Неправильный формат настроек")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range req.Settings {
			err := tx.Model(&models.GameSetting{}).
				Where("key = ?", key).
				Update("value", value).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	cache.Invalidate(c.UserContext(), cache.KeyGameSettings)
	return c.JSON(fiber.Map{"success": true})
}

type createContestRequest struct {
	ItemID        uint  `json:"item_id"`
	TicketPrice   int64 `json:"ticket_price"`
	DurationHours int   `json:"duration_hours"`
}

func CreateContest(c *fiber.Ctx) error {
	var req createContestRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.ItemID == 0 || req.TicketPrice <= 0 || req.DurationHours <= 0 {
		return helpers.BadRequest(c, "Все поля обязательны")
	}

	contestID, err := services.CreateContest(req.ItemID, req.TicketPrice, req.DurationHours)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"contestId": contestID,
	})
}

func DrawContest(c *fiber.Ctx) error {
	contestID, err := c.ParamsInt("id")
	if err != nil || contestID <= 0 {
		return helpers.BadRequest(c, "invalid contest id")
	}

	result, err := services.DrawContest(c.UserContext(), uint(contestID))
	if err != nil {
		return helpers.HTTPError(c, err)
	}

	if result.Participants == 0 {
		return c.JSON(fiber.Map{
			"message": "В конкурсе не было участников, конкурс завершен.",
		})
	}
	return c.JSON(fiber.Map{
		"success":            true,
		"winner_telegram_id": result.WinnerTelegramID,
		"message":            "Приз зачислен в инвентарь победителя.",
	})
}
