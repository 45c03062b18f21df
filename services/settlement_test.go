package services

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestUnpaidWinIsFlaggedForReconciliation(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	err := unpaidWin(42, 200, "coinflip_win", errors.New("ledger unreachable"))
	if !errors.Is(err, ErrPartialFailure) {
		t.Fatalf("unpaid win error = %v, want ErrPartialFailure", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "RECONCILE") {
		t.Errorf("log output %q missing RECONCILE marker", logged)
	}
	for _, want := range []string{"user=42", "delta=200", "reason=coinflip_win"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output %q missing %s", logged, want)
		}
	}
}
