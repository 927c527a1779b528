package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverdueLevelForDays(t *testing.T) {
	tests := []struct {
		days int
		want OverdueLevel
	}{
		{-1, OverdueLevelOK},
		{0, OverdueLevelOK},
		{1, OverdueLevelWarning},
		{5, OverdueLevelWarning},
		{6, OverdueLevelDanger},
		{10, OverdueLevelDanger},
		{11, OverdueLevelCritical},
		{45, OverdueLevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OverdueLevelForDays(tt.days, 5, 10), "days=%d", tt.days)
	}
}

func TestOverdueLevelForDaysCustomThresholds(t *testing.T) {
	assert.Equal(t, OverdueLevelWarning, OverdueLevelForDays(3, 3, 7))
	assert.Equal(t, OverdueLevelDanger, OverdueLevelForDays(4, 3, 7))
	assert.Equal(t, OverdueLevelCritical, OverdueLevelForDays(8, 3, 7))
}
