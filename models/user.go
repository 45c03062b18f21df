package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	TelegramID int64  `gorm:"uniqueIndex" json:"telegram_id"`
	Username   string `gorm:"size:128" json:"username"`

	// Cached mirror of the ledger balance. The ledger is authoritative;
	// this column is refreshed after every settled wager.
	Balance int64 `gorm:"not null;default:1000" json:"balance"`

	Inventory []InventoryEntry `gorm:"foreignKey:UserID"`
}
