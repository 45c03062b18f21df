package models

import (
	"gorm.io/gorm"
)

type Contest struct {
	gorm.Model

	ItemID      uint  `gorm:"not null" json:"item_id"`
	Item        Item  `gorm:"constraint:OnUpdate:CASCADE" json:"-"`
	TicketPrice int64 `gorm:"not null" json:"ticket_price"`

	// Unix milliseconds, matching what the mini-app countdown consumes.
	EndTime int64 `gorm:"not null" json:"end_time"`

	IsActive bool  `gorm:"not null;default:true;index" json:"is_active"`
	WinnerID *uint `json:"winner_id"`
}

// ContestTicket is a single purchased ticket. One row per ticket; the
// draw samples distinct holders, so ticket count never changes odds.
type ContestTicket struct {
	gorm.Model

	ContestID  uint  `gorm:"index;not null" json:"contest_id"`
	UserID     uint  `gorm:"index;not null" json:"user_id"`
	TelegramID int64 `gorm:"index;not null" json:"telegram_id"`
}

func (ContestTicket) TableName() string { return "user_tickets" }
