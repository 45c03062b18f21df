package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"aurum/database"
	"aurum/games"
	"aurum/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Session steps are read-modify-write on a durable row, so every step
// locks the row FOR UPDATE for its whole duration. Two concurrent selects
// on the same session serialize instead of double-advancing, and a
// cashout holds the lock across the ledger credit so the session cannot
// pay out twice.

type MinerStart struct {
	SessionID  string  `json:"sessionId"`
	NewBalance int64   `json:"newBalance"`
	NextWin    float64 `json:"nextWin"`
}

type MinerStep struct {
	Bust     bool              `json:"bust"`
	Cells    []games.MinerCell `json:"cells,omitempty"`
	Opened   int               `json:"opened"`
	TotalWin float64           `json:"totalWin"`
	NextWin  float64           `json:"nextWin"`
	// Cleared is set when every safe cell is open; the win was credited
	// automatically and NewBalance is valid.
	Cleared    bool  `json:"cleared"`
	NewBalance int64 `json:"newBalance,omitempty"`
}

type MinerCashout struct {
	WinAmount  int64 `json:"winAmount"`
	NewBalance int64 `json:"newBalance"`
}

// StartMiner charges the bet through the ledger, then persists a fresh
// 12-cell grid with 6 bombs.
func StartMiner(ctx context.Context, telegramID, bet int64) (*MinerStart, error) {
	state := Eng.NewMinerState()
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	var session models.GameSession
	newBalance, err := Settle(ctx, telegramID, -bet, "miner_start", func(tx *gorm.DB, user *models.User) error {
		session = models.GameSession{
			TelegramID: telegramID,
			UserID:     user.ID,
			Game:       models.GameMiner,
			Bet:        bet,
			State:      datatypes.JSON(raw),
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	next, _ := games.MinerWin(bet, 1).Round(2).Float64()
	return &MinerStart{SessionID: session.SID, NewBalance: newBalance, NextWin: next}, nil
}

// SelectMiner reveals one cell. A bomb ends the session with the full
// grid exposed; opening the last safe cell cashes out automatically.
func SelectMiner(ctx context.Context, telegramID int64, sessionID string, cell int) (*MinerStep, error) {
	if cell < 0 || cell >= games.MinerCells {
		return nil, fmt.Errorf("cell out of range: %w", ErrConflict)
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	session, state, err := lockMinerSession(tx, telegramID, sessionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if state.Cells[cell].Opened {
		tx.Rollback()
		return nil, fmt.Errorf("cell already opened: %w", ErrConflict)
	}
	state.Cells[cell].Opened = true

	if state.Cells[cell].Bomb {
		if err := tx.Delete(session).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
		return &MinerStep{Bust: true, Cells: state.Cells, Opened: state.Opened}, nil
	}

	state.Opened++
	totalWin, _ := games.MinerWin(session.Bet, state.Opened).Round(2).Float64()

	if state.Cleared() {
		win := games.MinerWin(session.Bet, state.Opened).Round(0).IntPart()
		newBalance, err := creditAndClose(ctx, tx, session, win, "miner_win")
		if err != nil {
			return nil, err
		}
		return &MinerStep{
			Opened:     state.Opened,
			TotalWin:   totalWin,
			Cleared:    true,
			NewBalance: newBalance,
		}, nil
	}

	if err := saveSessionState(tx, session, state); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	nextWin, _ := games.MinerWin(session.Bet, state.Opened+1).Round(2).Float64()
	return &MinerStep{Opened: state.Opened, TotalWin: totalWin, NextWin: nextWin}, nil
}

// CashoutMiner credits the accumulated win and destroys the session. At
// zero opened cells this refunds the stake; rejecting that is left to
// the client.
func CashoutMiner(ctx context.Context, telegramID int64, sessionID string) (*MinerCashout, error) {
	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	session, state, err := lockMinerSession(tx, telegramID, sessionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	win := games.MinerWin(session.Bet, state.Opened).Round(0).IntPart()
	newBalance, err := creditAndClose(ctx, tx, session, win, "miner_cashout")
	if err != nil {
		return nil, err
	}
	return &MinerCashout{WinAmount: win, NewBalance: newBalance}, nil
}

type TowerStart struct {
	SessionID  string  `json:"sessionId"`
	NewBalance int64   `json:"newBalance"`
	Payouts    []int64 `json:"payouts"`
}

type TowerStep struct {
	Bust    bool  `json:"bust"`
	BombCol int   `json:"bombCol"`
	Bombs   []int `json:"bombs,omitempty"`
	Level   int   `json:"level"`
	// CashoutWin is the tier claimable at the new level.
	CashoutWin int64 `json:"cashoutWin"`
	// Won is set when the fifth row was cleared; the top tier was
	// credited automatically.
	Won        bool  `json:"won"`
	WinAmount  int64 `json:"winAmount,omitempty"`
	NewBalance int64 `json:"newBalance,omitempty"`
}

type TowerCashout struct {
	WinAmount  int64 `json:"winAmount"`
	NewBalance int64 `json:"newBalance"`
}

// StartTower charges the bet and persists a five-row tower with one bomb
// column per row and the payout table fixed up front.
func StartTower(ctx context.Context, telegramID, bet int64) (*TowerStart, error) {
	if bet < games.TowerMinBet {
		return nil, fmt.Errorf("bet below minimum %d: %w", games.TowerMinBet, ErrConflict)
	}

	state := Eng.NewTowerState(bet)
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	var session models.GameSession
	newBalance, err := Settle(ctx, telegramID, -bet, "tower_start", func(tx *gorm.DB, user *models.User) error {
		session = models.GameSession{
			TelegramID: telegramID,
			UserID:     user.ID,
			Game:       models.GameTower,
			Bet:        bet,
			State:      datatypes.JSON(raw),
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	return &TowerStart{SessionID: session.SID, NewBalance: newBalance, Payouts: state.Payouts}, nil
}

// SelectTower picks a column on the current row. Hitting the bomb column
// busts; clearing the fifth row credits the top tier automatically.
func SelectTower(ctx context.Context, telegramID int64, sessionID string, col int) (*TowerStep, error) {
	if col < 0 || col >= games.TowerCols {
		return nil, fmt.Errorf("column out of range: %w", ErrConflict)
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	session, state, err := lockTowerSession(tx, telegramID, sessionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	bombCol := state.Bombs[state.Level]
	if col == bombCol {
		if err := tx.Delete(session).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
		return &TowerStep{Bust: true, BombCol: bombCol, Bombs: state.Bombs, Level: state.Level}, nil
	}

	state.Level++

	if state.Level == games.TowerLevels {
		win := state.Payouts[games.TowerLevels-1]
		newBalance, err := creditAndClose(ctx, tx, session, win, "tower_win")
		if err != nil {
			return nil, err
		}
		return &TowerStep{
			BombCol:    bombCol,
			Level:      state.Level,
			Won:        true,
			WinAmount:  win,
			NewBalance: newBalance,
		}, nil
	}

	if err := saveSessionState(tx, session, state); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &TowerStep{
		BombCol:    bombCol,
		Level:      state.Level,
		CashoutWin: state.Payouts[state.Level-1],
	}, nil
}

// CashoutTower claims the tier for the last cleared row. Nothing is
// claimable before the first row is cleared.
func CashoutTower(ctx context.Context, telegramID int64, sessionID string) (*TowerCashout, error) {
	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	session, state, err := lockTowerSession(tx, telegramID, sessionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if state.Level == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("no cleared rows to cash out: %w", ErrConflict)
	}

	win := state.Payouts[state.Level-1]
	newBalance, err := creditAndClose(ctx, tx, session, win, "tower_cashout")
	if err != nil {
		return nil, err
	}
	return &TowerCashout{WinAmount: win, NewBalance: newBalance}, nil
}

func lockSession(tx *gorm.DB, telegramID int64, sessionID, game string) (*models.GameSession, error) {
	var session models.GameSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sid = ? AND telegram_id = ? AND game = ?", sessionID, telegramID, game).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, err
	}
	return &session, nil
}

func lockMinerSession(tx *gorm.DB, telegramID int64, sessionID string) (*models.GameSession, *games.MinerState, error) {
	session, err := lockSession(tx, telegramID, sessionID, models.GameMiner)
	if err != nil {
		return nil, nil, err
	}
	var state games.MinerState
	if err := json.Unmarshal(session.State, &state); err != nil {
		return nil, nil, fmt.Errorf("corrupt miner state for %s: %v", sessionID, err)
	}
	return session, &state, nil
}

func lockTowerSession(tx *gorm.DB, telegramID int64, sessionID string) (*models.GameSession, *games.TowerState, error) {
	session, err := lockSession(tx, telegramID, sessionID, models.GameTower)
	if err != nil {
		return nil, nil, err
	}
	var state games.TowerState
	if err := json.Unmarshal(session.State, &state); err != nil {
		return nil, nil, fmt.Errorf("corrupt tower state for %s: %v", sessionID, err)
	}
	return session, &state, nil
}

func saveSessionState(tx *gorm.DB, session *models.GameSession, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return tx.Model(session).Update("state", datatypes.JSON(raw)).Error
}

// creditAndClose finishes a session while its row lock is held: the
// ledger credit is confirmed first, then the session is deleted and the
// balance mirror refreshed inside the same transaction. The caller's tx
// is always resolved on return.
func creditAndClose(ctx context.Context, tx *gorm.DB, session *models.GameSession, win int64, reason string) (int64, error) {
	newBalance, err := Ledger.ChangeBalance(ctx, session.TelegramID, win, reason)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Delete(session).Error; err != nil {
		tx.Rollback()
		return settleFailed(session.TelegramID, win, reason, err)
	}
	if err := tx.Model(&models.User{}).Where("id = ?", session.UserID).
		Update("balance", newBalance).Error; err != nil {
		tx.Rollback()
		return settleFailed(session.TelegramID, win, reason, err)
	}
	if err := tx.Commit().Error; err != nil {
		return settleFailed(session.TelegramID, win, reason, err)
	}
	return newBalance, nil
}
