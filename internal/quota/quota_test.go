package quota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anud18/scholarship-system-sub000/internal/quota"
)

func TestCalculateTotalQuota(t *testing.T) {
	m := quota.Matrix{PhdQuotas: map[string]map[string]quota.Cell{
		"nstc": {
			"C": {TotalQuota: 5, UsedQuota: 5},
			"E": {TotalQuota: 4, UsedQuota: 0},
		},
	}}
	assert.Equal(t, 9, quota.CalculateTotalQuota(m))
	assert.Equal(t, 5, quota.CalculateTotalUsed(m))
}

func TestCalculateTotalQuotaEmpty(t *testing.T) {
	assert.Equal(t, 0, quota.CalculateTotalQuota(quota.Matrix{}))
	assert.Equal(t, 0, quota.CalculateTotalQuota(quota.Matrix{PhdQuotas: map[string]map[string]quota.Cell{}}))
}

func TestCalculateUsagePercentage(t *testing.T) {
	cases := []struct {
		name        string
		used, total int
		want        int
	}{
		{"zero denominator", 3, 0, 0},
		{"full", 5, 5, 100},
		{"none", 0, 4, 0},
		{"partial", 78, 100, 78},
		{"over-allocation not clamped", 137, 100, 137},
		{"rounds half up", 1, 8, 13}, // 12.5
		{"rounds down", 1, 3, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, quota.CalculateUsagePercentage(tc.used, tc.total))
		})
	}
}

func TestStatusColor(t *testing.T) {
	cases := []struct {
		pct  int
		want quota.Color
	}{
		{0, quota.ColorGreen},
		{49, quota.ColorGreen},
		{50, quota.ColorYellow},
		{78, quota.ColorYellow},
		{79, quota.ColorYellow},
		{80, quota.ColorOrange},
		{94, quota.ColorOrange},
		{95, quota.ColorRed},
		{100, quota.ColorRed},
		{137, quota.ColorRed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, quota.StatusColor(tc.pct), "pct=%d", tc.pct)
	}
}

func TestUsageFeedsColor(t *testing.T) {
	assert.Equal(t, quota.ColorRed, quota.StatusColor(quota.CalculateUsagePercentage(5, 5)))
	assert.Equal(t, quota.ColorGreen, quota.StatusColor(quota.CalculateUsagePercentage(0, 4)))
	assert.Equal(t, quota.ColorYellow, quota.StatusColor(quota.CalculateUsagePercentage(78, 100)))
}
