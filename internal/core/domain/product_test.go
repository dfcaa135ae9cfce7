package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProcessingFeeForTenure(t *testing.T) {
	cases := []struct {
		weeks int
		fee   int64
	}{
		{0, 0},
		{1, 1000},
		{12, 1000},
		{13, 1500},
		{24, 1500},
		{25, 2000},
		{52, 2000},
		{53, 2500},
		{104, 2500},
	}
	for _, tc := range cases {
		assert.True(t, ProcessingFeeForTenure(tc.weeks).Equal(decimal.NewFromInt(tc.fee)),
			"tenure %d weeks", tc.weeks)
	}
}

func TestWeeklyRental(t *testing.T) {
	// 100000 at 30% flat over 52 weeks: 130000/52 = 2500
	rental := WeeklyRental(decimal.NewFromInt(100000), decimal.NewFromInt(30), 52)
	assert.True(t, rental.Equal(decimal.NewFromInt(2500)), "got %s", rental)

	// 50000 at 24% flat over 52 weeks: 62000/52 = 1192.3..., rounded up
	rental = WeeklyRental(decimal.NewFromInt(50000), decimal.NewFromInt(24), 52)
	assert.True(t, rental.Equal(decimal.NewFromInt(1193)), "got %s", rental)

	assert.True(t, WeeklyRental(decimal.NewFromInt(50000), decimal.NewFromInt(24), 0).IsZero())
}

func TestComputeReloanEligibility(t *testing.T) {
	rel := ComputeReloanEligibility(36, 52, decimal.NewFromInt(30000))
	assert.False(t, rel.IsEligible, "progress %s", rel.Progress)

	rel = ComputeReloanEligibility(37, 52, decimal.NewFromInt(28000))
	assert.True(t, rel.IsEligible, "progress %s", rel.Progress)

	rel = ComputeReloanEligibility(0, 0, decimal.Zero)
	assert.False(t, rel.IsEligible)
	assert.True(t, rel.Progress.IsZero())
}
