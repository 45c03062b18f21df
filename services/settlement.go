package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"aurum/database"
	"aurum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settle is the canonical wager ordering: the ledger call goes first and
// only on its success does the local effect run, inside one transaction
// together with the cached balance refresh. Debits therefore gate the
// benefit they pay for, and credits complete before the asset they bought
// is deleted. A local failure after a settled ledger call is logged with
// a RECONCILE marker and surfaced as ErrPartialFailure; the ledger call
// is not reversible from here.
func Settle(ctx context.Context, telegramID, delta int64, reason string, effect func(tx *gorm.DB, user *models.User) error) (int64, error) {
	var user models.User
	if err := database.DB.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
		}
		return 0, err
	}

	newBalance := user.Balance
	if delta != 0 {
		nb, err := Ledger.ChangeBalance(ctx, telegramID, delta, reason)
		if err != nil {
			return 0, err
		}
		newBalance = nb
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return settleFailed(telegramID, delta, reason, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var locked models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, user.ID).Error; err != nil {
		tx.Rollback()
		return settleFailed(telegramID, delta, reason, err)
	}

	if effect != nil {
		if err := effect(tx, &locked); err != nil {
			tx.Rollback()
			return settleFailed(telegramID, delta, reason, err)
		}
	}

	if delta != 0 {
		if err := tx.Model(&locked).Update("balance", newBalance).Error; err != nil {
			tx.Rollback()
			return settleFailed(telegramID, delta, reason, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return settleFailed(telegramID, delta, reason, err)
	}

	return newBalance, nil
}

// CreditWin settles a win credit whose bet was already debited. A
// failure at this point is a partial settlement either way: the player
// is owed the payout, so it is recorded for manual reconciliation
// instead of vanishing with the error.
func CreditWin(ctx context.Context, telegramID, payout int64, reason string) (int64, error) {
	newBalance, err := Settle(ctx, telegramID, payout, reason, nil)
	if err != nil && !errors.Is(err, ErrPartialFailure) {
		return 0, unpaidWin(telegramID, payout, reason, err)
	}
	return newBalance, err
}

func unpaidWin(telegramID, payout int64, reason string, err error) error {
	log.Printf("❌ RECONCILE user=%d delta=%d reason=%s: win credit not applied: %v",
		telegramID, payout, reason, err)
	return fmt.Errorf("%w: %v", ErrPartialFailure, err)
}

func settleFailed(telegramID, delta int64, reason string, err error) (int64, error) {
	if delta == 0 {
		return 0, err
	}
	log.Printf("❌ RECONCILE user=%d delta=%d reason=%s: ledger applied, local write failed: %v",
		telegramID, delta, reason, err)
	return 0, fmt.Errorf("%w: %v", ErrPartialFailure, err)
}
