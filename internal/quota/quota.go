// Package quota holds the matrix-shaped award quota model (sub-type x
// college) and the pure aggregation helpers the dashboards render from.
package quota

import "math"

// Cell tracks allocated versus consumed award slots for one sub-type /
// college pair. UsedQuota may legitimately exceed TotalQuota during
// over-allocation and is never clamped.
type Cell struct {
	TotalQuota int `json:"total_quota"`
	UsedQuota  int `json:"used_quota"`
}

// Matrix is a read-only snapshot of the quota table: outer key sub-type
// code, inner key college code.
type Matrix struct {
	PhdQuotas map[string]map[string]Cell `json:"phd_quotas"`
}

// CalculateTotalQuota sums TotalQuota over every cell. Empty matrix is 0.
func CalculateTotalQuota(m Matrix) int {
	sum := 0
	for _, colleges := range m.PhdQuotas {
		for _, c := range colleges {
			sum += c.TotalQuota
		}
	}
	return sum
}

// CalculateTotalUsed sums UsedQuota over every cell.
func CalculateTotalUsed(m Matrix) int {
	sum := 0
	for _, colleges := range m.PhdQuotas {
		for _, c := range colleges {
			sum += c.UsedQuota
		}
	}
	return sum
}

// CalculateUsagePercentage returns round(100*used/total), or 0 when total
// is 0. The result is not clamped: over-allocation (137%) must stay
// visible to operators.
func CalculateUsagePercentage(used, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(used) / float64(total)))
}

// Color is the severity bucket a usage percentage falls into.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
)

// StatusColor buckets a usage percentage. Boundaries are inclusive lower
// bounds: 95 is red, 80 is orange, 50 is yellow.
func StatusColor(percentage int) Color {
	switch {
	case percentage >= 95:
		return ColorRed
	case percentage >= 80:
		return ColorOrange
	case percentage >= 50:
		return ColorYellow
	default:
		return ColorGreen
	}
}
