package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"aurum/models"

	"gorm.io/gorm"
)

func TestCheckOwnerBindsTelegramID(t *testing.T) {
	owner := &models.User{Model: gorm.Model{ID: 3}, TelegramID: 111}

	if err := checkOwner(owner, 111); err != nil {
		t.Fatalf("matching telegram id rejected: %v", err)
	}

	err := checkOwner(owner, 222)
	if err == nil {
		t.Fatal("mismatched telegram id accepted")
	}
	if !errors.Is(err, ErrConflict) {
		t.Errorf("mismatch error = %v, want ErrConflict", err)
	}
}

func TestCatalogItemShape(t *testing.T) {
	items := []models.Item{
		{Model: gorm.Model{ID: 4}, Name: "Lemon", ImageSrc: "images/slot_lemon.png", Value: 100},
	}

	raw, err := json.Marshal(toCatalog(items))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	payload := string(raw)
	for _, want := range []string{`"id":4`, `"name":"Lemon"`, `"imageSrc":"images/slot_lemon.png"`, `"value":100`} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload %s missing %s", payload, want)
		}
	}
	for _, stray := range []string{`"ID"`, `"CreatedAt"`, `"UpdatedAt"`, `"DeletedAt"`} {
		if strings.Contains(payload, stray) {
			t.Errorf("payload %s leaks model field %s", payload, stray)
		}
	}
}
