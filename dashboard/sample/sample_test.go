package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	s := Snapshot()

	assert.Equal(t, "Sample City", s.City)
	assert.Equal(t, "15.2", s.TodayWasteTons.String())
	assert.Equal(t, "16.4", s.PredictedTomorrowTons.String())
	assert.Equal(t, 45, s.RecyclingRate)
	require.Len(t, s.Daily, 7)
	assert.Equal(t, "Mon", s.Daily[0].Day)
	assert.Equal(t, "Sun", s.Daily[6].Day)
	assert.Equal(t, "15", s.Daily[6].Tons.String())
	require.Len(t, s.Bins, 3)
	assert.Equal(t, []int{85, 60, 95}, []int{s.Bins[0].FillPct, s.Bins[1].FillPct, s.Bins[2].FillPct})
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	s := Snapshot()
	s.Bins[0].FillPct = 10
	s.Daily[0].Day = "changed"
	s.City = "Elsewhere"

	fresh := Snapshot()
	assert.Equal(t, 85, fresh.Bins[0].FillPct)
	assert.Equal(t, "Mon", fresh.Daily[0].Day)
	assert.Equal(t, "Sample City", fresh.City)
}
