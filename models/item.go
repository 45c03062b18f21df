package models

import (
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model

	Name     string `gorm:"size:128;not null" json:"name"`
	ImageSrc string `gorm:"size:255" json:"imageSrc"`
	Value    int64  `gorm:"not null" json:"value"`
}

// InventoryEntry is one owned copy of an Item. Its own ID is the
// "uniqueId" the client sells or consumes by; a user may hold several
// entries pointing at the same item.
type InventoryEntry struct {
	gorm.Model

	UserID uint `gorm:"index;not null" json:"user_id"`
	ItemID uint `gorm:"index;not null" json:"item_id"`
	Item   Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (InventoryEntry) TableName() string { return "user_inventory" }

// CaseItem is loadout membership for the single global case (case_id 1).
// An empty table means the whole catalog is eligible.
type CaseItem struct {
	CaseID uint `gorm:"primaryKey" json:"case_id"`
	ItemID uint `gorm:"primaryKey" json:"item_id"`
}

func (CaseItem) TableName() string { return "case_items" }
