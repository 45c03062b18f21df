package models

// GameSetting gates which games the client shows. The server does not
// re-check these before resolving a wager; they are a UI affordance only.
type GameSetting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"size:16" json:"value"`
}

func (GameSetting) TableName() string { return "game_settings" }
