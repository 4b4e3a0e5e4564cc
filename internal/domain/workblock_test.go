package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkBlock_Covers(t *testing.T) {
	block := &WorkBlock{DayOfWeek: DayMonday, StartTime: "09:00", EndTime: "11:00"}

	assert.True(t, block.Covers("09:00", "09:30"))
	assert.True(t, block.Covers("10:30", "11:00"))
	assert.False(t, block.Covers("08:30", "09:00"))
	assert.False(t, block.Covers("10:45", "11:15"))
	assert.False(t, block.Covers("11:00", "11:30"))
}

func TestWorkBlock_Overlaps(t *testing.T) {
	block := &WorkBlock{DayOfWeek: DayMonday, StartTime: "09:00", EndTime: "11:00"}

	assert.True(t, block.Overlaps("10:30", "11:30"))
	assert.True(t, block.Overlaps("08:00", "09:30"))
	// граничащие интервалы не пересекаются
	assert.False(t, block.Overlaps("11:00", "12:00"))
	assert.False(t, block.Overlaps("08:00", "09:00"))
}

func TestWeekdayIndex(t *testing.T) {
	// 2 марта 2026 — понедельник
	assert.Equal(t, DayMonday, WeekdayIndex(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DaySunday, WeekdayIndex(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DaySaturday, WeekdayIndex(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
}
