package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatusFor(t *testing.T) {
	target := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		current  decimal.Decimal
		expected GoalStatus
	}{
		{"below target", decimal.NewFromInt(90), GoalStatusActive},
		{"exactly target", decimal.NewFromInt(100), GoalStatusCompleted},
		{"above target", decimal.RequireFromString("100.01"), GoalStatusCompleted},
		{"zero", decimal.Zero, GoalStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.current, target); got != tt.expected {
				t.Errorf("StatusFor(%s, 100) = %s, want %s", tt.current, got, tt.expected)
			}
		})
	}
}

func TestPeriodWindowDays(t *testing.T) {
	tests := []struct {
		period   Period
		days     int
		windowed bool
	}{
		{PeriodWeek, 7, true},
		{PeriodMonth, 30, true},
		{PeriodYear, 365, true},
		{Period("all"), 0, false},
		{Period(""), 0, false},
	}

	for _, tt := range tests {
		days, ok := tt.period.WindowDays()
		if days != tt.days || ok != tt.windowed {
			t.Errorf("Period(%q).WindowDays() = (%d, %v), want (%d, %v)", tt.period, days, ok, tt.days, tt.windowed)
		}
	}
}
