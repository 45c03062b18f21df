package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GameMiner = "miner"
	GameTower = "tower"
)

// GameSession is the durable state of one in-progress multi-step game.
// The SID is a bearer token: presenting it together with the owning
// telegram_id is enough to act on the session.
type GameSession struct {
	gorm.Model

	SID        string `gorm:"size:36;uniqueIndex;not null" json:"sid"`
	TelegramID int64  `gorm:"index;not null" json:"telegram_id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`

	Game  string         `gorm:"size:16;index;not null" json:"game"`
	Bet   int64          `gorm:"not null" json:"bet"`
	State datatypes.JSON `json:"state"`
}

func (s *GameSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.SID == "" {
		s.SID = strings.ToLower(uuid.New().String())
	}
	return nil
}
