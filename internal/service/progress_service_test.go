package service

import (
	"testing"

	"speechcoach/internal/models"
)

func TestGoalPercentage(t *testing.T) {
	tests := []struct {
		name string
		done int
		goal int
		want float64
	}{
		{"half of goal", 15, 30, 50},
		{"goal reached", 30, 30, 100},
		{"over goal capped", 60, 30, 100},
		{"zero goal", 20, 0, 0},
		{"negative goal", 20, -5, 0},
		{"nothing done", 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := goalPercentage(tt.done, tt.goal); got != tt.want {
				t.Errorf("goalPercentage(%d, %d) = %v, want %v", tt.done, tt.goal, got, tt.want)
			}
		})
	}
}

func TestAverageScore(t *testing.T) {
	days := []models.UserProgress{
		{AverageScore: 80},
		{AverageScore: 90},
		{AverageScore: 70},
	}
	if got := averageScore(days); got != 80 {
		t.Errorf("averageScore() = %v, want 80", got)
	}

	if got := averageScore(nil); got != 0 {
		t.Errorf("averageScore(nil) = %v, want 0", got)
	}
}
