package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aurum/database"
	"aurum/models"
	"aurum/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContestSummary is what the client renders on the contest screen.
type ContestSummary struct {
	ID           uint   `json:"id"`
	EndTime      int64  `json:"end_time"`
	TicketPrice  int64  `json:"ticket_price"`
	WinnerID     *uint  `json:"winner_id"`
	ItemName     string `json:"itemName"`
	ItemImageSrc string `json:"itemImageSrc"`
	Count        int64  `json:"count"`
	Participants int64  `json:"participants"`
	UserTickets  int64  `json:"userTickets"`
}

// CurrentContest returns the active, unexpired contest with ticket
// aggregates, or nil when there is none.
func CurrentContest(telegramID int64) (*ContestSummary, error) {
	now := time.Now().UnixMilli()

	var contest models.Contest
	err := database.DB.Preload("Item").
		Where("is_active = ? AND end_time > ?", true, now).
		Order("id DESC").
		First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	summary := &ContestSummary{
		ID:           contest.ID,
		EndTime:      contest.EndTime,
		TicketPrice:  contest.TicketPrice,
		WinnerID:     contest.WinnerID,
		ItemName:     contest.Item.Name,
		ItemImageSrc: contest.Item.ImageSrc,
	}

	row := database.DB.Model(&models.ContestTicket{}).
		Where("contest_id = ?", contest.ID).
		Select("COUNT(*) AS count, COUNT(DISTINCT user_id) AS participants").
		Row()
	if err := row.Scan(&summary.Count, &summary.Participants); err != nil {
		return nil, err
	}

	if telegramID != 0 {
		err = database.DB.Model(&models.ContestTicket{}).
			Where("contest_id = ? AND telegram_id = ?", contest.ID, telegramID).
			Count(&summary.UserTickets).Error
		if err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// CreateContest deactivates any currently active contest and opens a new
// one, so at most one contest is ever active.
func CreateContest(itemID uint, ticketPrice int64, durationHours int) (uint, error) {
	var item models.Item
	if err := database.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		}
		return 0, err
	}

	contest := models.Contest{
		ItemID:      itemID,
		TicketPrice: ticketPrice,
		EndTime:     time.Now().Add(time.Duration(durationHours) * time.Hour).UnixMilli(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Contest{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&contest).Error
	})
	if err != nil {
		return 0, err
	}
	return contest.ID, nil
}

// BuyTickets charges price*quantity, then inserts one ticket row per
// unit. The contest row is re-locked and re-verified under the effect
// transaction so a draw racing the purchase cannot sell into a settled
// contest unnoticed.
func BuyTickets(ctx context.Context, contestID uint, telegramID int64, quantity int) (int64, error) {
	var contest models.Contest
	err := database.DB.Where("id = ? AND is_active = ?", contestID, true).First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("contest %d is not active: %w", contestID, ErrConflict)
		}
		return 0, err
	}
	if contest.EndTime <= time.Now().UnixMilli() {
		return 0, fmt.Errorf("contest %d has ended: %w", contestID, ErrConflict)
	}

	totalCost := contest.TicketPrice * int64(quantity)
	reason := fmt.Sprintf("buy_ticket_x%d_contest_%d", quantity, contestID)

	return Settle(ctx, telegramID, -totalCost, reason, func(tx *gorm.DB, user *models.User) error {
		var locked models.Contest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", contestID, true).
			First(&locked).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("contest %d deactivated during purchase: %w", contestID, ErrConflict)
			}
			return err
		}

		for i := 0; i < quantity; i++ {
			ticket := models.ContestTicket{
				ContestID:  contestID,
				UserID:     user.ID,
				TelegramID: telegramID,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type DrawResult struct {
	WinnerUserID     uint  `json:"winner_user_id"`
	WinnerTelegramID int64 `json:"winner_telegram_id"`
	Participants     int64 `json:"participants"`
}

type contestParticipant struct {
	UserID     uint
	TelegramID int64
}

// DrawContest settles a contest in one transaction: the row is locked
// while still active, one winner is picked uniformly among distinct
// ticket-holders, the prize lands in their inventory and the contest is
// closed. A concurrent draw finds is_active already false and is
// rejected, so there is never a second winner. With no participants the
// contest closes without a prize.
func DrawContest(ctx context.Context, contestID uint) (*DrawResult, error) {
	var result *DrawResult
	var prizeName string

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var contest models.Contest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Item").
			Where("id = ? AND is_active = ?", contestID, true).
			First(&contest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("no active contest %d to draw: %w", contestID, ErrConflict)
			}
			return err
		}

		var participants []contestParticipant
		err = tx.Model(&models.ContestTicket{}).
			Distinct("user_id", "telegram_id").
			Where("contest_id = ?", contestID).
			Find(&participants).Error
		if err != nil {
			return err
		}

		if len(participants) == 0 {
			result = &DrawResult{}
			return tx.Model(&contest).Update("is_active", false).Error
		}

		winner := participants[Eng.DrawWinner(len(participants))]

		prize := models.InventoryEntry{UserID: winner.UserID, ItemID: contest.ItemID}
		if err := tx.Create(&prize).Error; err != nil {
			return err
		}

		err = tx.Model(&contest).Updates(map[string]any{
			"is_active": false,
			"winner_id": winner.UserID,
		}).Error
		if err != nil {
			return err
		}

		prizeName = contest.Item.Name
		result = &DrawResult{
			WinnerUserID:     winner.UserID,
			WinnerTelegramID: winner.TelegramID,
			Participants:     int64(len(participants)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.WinnerTelegramID != 0 {
		notify.ContestWin(result.WinnerTelegramID, prizeName)
	}

	return result, nil
}
