package user

import (
	"errors"

	"aurum/database"
	"aurum/helpers"
	"aurum/models"
	"aurum/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type getOrCreateRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
}

// GetOrCreate returns the user row for a telegram id, creating it with
// the initial balance on first contact.
func GetOrCreate(c *fiber.Ctx) error {
	var req getOrCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.TelegramID == 0 {
		return helpers.BadRequest(c, "telegram_id является обязательным")
	}

	var user models.User
	err := database.DB.Where("telegram_id = ?", req.TelegramID).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HTTPError(c, err)
		}
		user = models.User{
			TelegramID: req.TelegramID,
			Username:   req.Username,
			Balance:    1000,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return helpers.HTTPError(c, err)
		}
		c.Status(fiber.StatusCreated)
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"telegram_id": user.TelegramID,
		"username":    user.Username,
		"balance":     user.Balance,
	})
}

func Inventory(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID <= 0 {
		return helpers.BadRequest(c, "user_id является обязательным")
	}

	items, err := services.Inventory(uint(userID))
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(items)
}

type sellRequest struct {
	UserID     uint  `json:"user_id"`
	UniqueID   uint  `json:"unique_id"`
	TelegramID int64 `json:"telegram_id"`
}

func Sell(c *fiber.Ctx) error {
	var req sellRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.UserID == 0 || req.UniqueID == 0 || req.TelegramID == 0 {
		return helpers.BadRequest(c, "Неверные данные для продажи")
	}

	newBalance, err := services.Sell(c.UserContext(), req.TelegramID, req.UserID, req.UniqueID)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "newBalance": newBalance})
}

type sellMultipleRequest struct {
	UserID     uint   `json:"user_id"`
	UniqueIDs  []uint `json:"unique_ids"`
	TelegramID int64  `json:"telegram_id"`
}

func SellMultiple(c *fiber.Ctx) error {
	var req sellMultipleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.BadRequest(c, "invalid JSON body")
	}
	if req.UserID == 0 || len(req.UniqueIDs) == 0 || req.TelegramID == 0 {
		return helpers.BadRequest(c, "Неверные данные для продажи")
	}

	newBalance, soldAmount, err := services.SellMultiple(c.UserContext(), req.TelegramID, req.UserID, req.UniqueIDs)
	if err != nil {
		return helpers.HTTPError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"newBalance": newBalance,
		"soldAmount": soldAmount,
	})
}
