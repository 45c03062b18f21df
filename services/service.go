package services

import (
	"errors"

	"aurum/games"
	"aurum/ledger"
)

var (
	// Ledger is the shared client for the external balance service.
	Ledger *ledger.Client
	// Eng is the shared randomness engine for game resolution.
	Eng *games.Engine
)

func Init(lc *ledger.Client, e *games.Engine) {
	Ledger = lc
	Eng = e
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrPartialFailure marks the one locally unrecoverable class: the
	// ledger call succeeded but the local write did not. Flagged for
	// manual reconciliation.
	ErrPartialFailure = errors.New("ledger applied but local write failed")
)
