package service

import (
	"testing"

	"speechcoach/internal/models"
)

func TestValidGameID(t *testing.T) {
	for _, id := range models.GameIDs {
		if !validGameID(id) {
			t.Errorf("validGameID(%q) = false, want true", id)
		}
	}

	for _, id := range []string{"", "poker", "WORD-MATCH"} {
		if validGameID(id) {
			t.Errorf("validGameID(%q) = true, want false", id)
		}
	}
}
