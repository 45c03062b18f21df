package services

import (
	"context"
	"errors"
	"fmt"

	"aurum/database"
	"aurum/games"
	"aurum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WonItem is the client-facing shape of an inventory entry.
type WonItem struct {
	UniqueID uint   `json:"uniqueId"`
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageSrc string `json:"imageSrc"`
	Value    int64  `json:"value"`
}

// checkOwner binds the acting telegram identity to the row owner. Every
// operation that consumes or credits an owned asset must pass it before
// any money moves, so a request body cannot name one user's asset and
// another user's ledger account.
func checkOwner(owner *models.User, telegramID int64) error {
	if owner.TelegramID != telegramID {
		return fmt.Errorf("user %d does not match telegram id: %w", owner.ID, ErrConflict)
	}
	return nil
}

func requireOwner(userID uint, telegramID int64) (*models.User, error) {
	var owner models.User
	if err := database.DB.First(&owner, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	if err := checkOwner(&owner, telegramID); err != nil {
		return nil, err
	}
	return &owner, nil
}

// Inventory lists a user's owned items, one row per copy.
func Inventory(userID uint) ([]WonItem, error) {
	var entries []models.InventoryEntry
	if err := database.DB.Preload("Item").Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make([]WonItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, WonItem{
			UniqueID: e.ID,
			ID:       e.Item.ID,
			Name:     e.Item.Name,
			ImageSrc: e.Item.ImageSrc,
			Value:    e.Item.Value,
		})
	}
	return out, nil
}

// Sell credits an item's value through the ledger, then deletes the
// entry inside the same local transaction. The entry is re-locked and
// re-checked under that transaction, so a concurrent double-sell fails
// locally and is flagged for reconciliation rather than deleting twice.
func Sell(ctx context.Context, telegramID int64, userID, uniqueID uint) (int64, error) {
	if _, err := requireOwner(userID, telegramID); err != nil {
		return 0, err
	}

	var entry models.InventoryEntry
	err := database.DB.Preload("Item").
		Where("id = ? AND user_id = ?", uniqueID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("inventory entry %d: %w", uniqueID, ErrNotFound)
		}
		return 0, err
	}

	reason := fmt.Sprintf("sell_item_%d", uniqueID)
	return Settle(ctx, telegramID, entry.Item.Value, reason, func(tx *gorm.DB, user *models.User) error {
		return deleteOwnedEntries(tx, userID, []uint{uniqueID})
	})
}

// SellMultiple settles a batch of entries as one credit.
func SellMultiple(ctx context.Context, telegramID int64, userID uint, uniqueIDs []uint) (newBalance, soldAmount int64, err error) {
	if _, err := requireOwner(userID, telegramID); err != nil {
		return 0, 0, err
	}

	var entries []models.InventoryEntry
	err = database.DB.Preload("Item").
		Where("id IN ? AND user_id = ?", uniqueIDs, userID).
		Find(&entries).Error
	if err != nil {
		return 0, 0, err
	}
	if len(entries) != len(uniqueIDs) {
		return 0, 0, fmt.Errorf("some items are not in the inventory: %w", ErrNotFound)
	}

	for _, e := range entries {
		soldAmount += e.Item.Value
	}

	reason := fmt.Sprintf("sell_items_x%d", len(uniqueIDs))
	newBalance, err = Settle(ctx, telegramID, soldAmount, reason, func(tx *gorm.DB, user *models.User) error {
		return deleteOwnedEntries(tx, userID, uniqueIDs)
	})
	if err != nil {
		return 0, 0, err
	}
	return newBalance, soldAmount, nil
}

func deleteOwnedEntries(tx *gorm.DB, userID uint, uniqueIDs []uint) error {
	var locked []models.InventoryEntry
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND user_id = ?", uniqueIDs, userID).
		Find(&locked).Error; err != nil {
		return err
	}
	if len(locked) != len(uniqueIDs) {
		return fmt.Errorf("inventory changed during sale: %w", ErrConflict)
	}
	return tx.Where("id IN ? AND user_id = ?", uniqueIDs, userID).
		Delete(&models.InventoryEntry{}).Error
}

// CatalogItem is the client-facing shape of a catalog row. The client
// picks upgrade targets by the lowercase `id` field, so catalog payloads
// go through this mapping instead of marshaling the model directly.
type CatalogItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageSrc string `json:"imageSrc"`
	Value    int64  `json:"value"`
}

func toCatalog(items []models.Item) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		out = append(out, CatalogItem{
			ID:       item.ID,
			Name:     item.Name,
			ImageSrc: item.ImageSrc,
			Value:    item.Value,
		})
	}
	return out
}

// Catalog is the case loadout in client shape.
func Catalog(tx *gorm.DB) ([]CatalogItem, error) {
	items, err := CaseLoadout(tx)
	if err != nil {
		return nil, err
	}
	return toCatalog(items), nil
}

// AllItems lists the full item catalog for the admin console, most
// valuable first.
func AllItems() ([]CatalogItem, error) {
	var items []models.Item
	if err := database.DB.Order("value DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return toCatalog(items), nil
}

// CaseLoadout is the set of items eligible to drop. An empty membership
// table falls back to the full catalog; that fallback is load-bearing.
func CaseLoadout(tx *gorm.DB) ([]models.Item, error) {
	var items []models.Item
	err := tx.Joins("JOIN case_items ON case_items.item_id = items.id AND case_items.case_id = 1").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if err := tx.Order("value DESC").Find(&items).Error; err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item catalog is empty: %w", ErrNotFound)
	}
	return items, nil
}

// OpenCase charges price*quantity up front, then draws that many items
// with replacement from the loadout and awards them.
func OpenCase(ctx context.Context, telegramID int64, userID uint, quantity int) (int64, []WonItem, error) {
	if _, err := requireOwner(userID, telegramID); err != nil {
		return 0, nil, err
	}

	totalCost := games.CasePrice * int64(quantity)

	var won []WonItem
	newBalance, err := Settle(ctx, telegramID, -totalCost, fmt.Sprintf("open_case_x%d", quantity), func(tx *gorm.DB, user *models.User) error {
		pool, err := CaseLoadout(tx)
		if err != nil {
			return err
		}

		for _, pick := range Eng.DrawCase(len(pool), quantity) {
			item := pool[pick]
			entry := models.InventoryEntry{UserID: userID, ItemID: item.ID}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			won = append(won, WonItem{
				UniqueID: entry.ID,
				ID:       item.ID,
				Name:     item.Name,
				ImageSrc: item.ImageSrc,
				Value:    item.Value,
			})
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return newBalance, won, nil
}

type UpgradeResult struct {
	IsSuccess bool     `json:"isSuccess"`
	Chance    float64  `json:"chance"`
	NewItem   *WonItem `json:"newItem"`
}

// Upgrade gambles an owned entry on a more valuable item. No currency
// moves: the stake is the entry itself, destroyed on failure and
// replaced on success. Runs entirely in one locked local transaction.
func Upgrade(ctx context.Context, telegramID int64, userID, uniqueID, desiredItemID uint) (*UpgradeResult, error) {
	if _, err := requireOwner(userID, telegramID); err != nil {
		return nil, err
	}

	var result *UpgradeResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.InventoryEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", uniqueID, userID).
			First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("inventory entry %d: %w", uniqueID, ErrNotFound)
			}
			return err
		}

		var owned, desired models.Item
		if err := tx.First(&owned, entry.ItemID).Error; err != nil {
			return err
		}
		if err := tx.First(&desired, desiredItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", desiredItemID, ErrNotFound)
			}
			return err
		}

		chance := games.UpgradeChance(owned.Value, desired.Value)
		success := Eng.RollUpgrade(chance)

		// The staked entry is consumed either way.
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		result = &UpgradeResult{IsSuccess: success, Chance: chance}
		if success {
			replacement := models.InventoryEntry{UserID: userID, ItemID: desired.ID}
			if err := tx.Create(&replacement).Error; err != nil {
				return err
			}
			result.NewItem = &WonItem{
				UniqueID: replacement.ID,
				ID:       desired.ID,
				Name:     desired.Name,
				ImageSrc: desired.ImageSrc,
				Value:    desired.Value,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
