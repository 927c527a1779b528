package enum

// OverdueLevel is a coarse severity bucket derived from how many days an
// invoice is past its due date.
type OverdueLevel string

const (
	OverdueLevelOK       OverdueLevel = "ok"
	OverdueLevelWarning  OverdueLevel = "warning"
	OverdueLevelDanger   OverdueLevel = "danger"
	OverdueLevelCritical OverdueLevel = "critical"
)

// OverdueLevelForDays buckets a days-overdue count. warnDays and dangerDays
// are inclusive upper bounds of their buckets (with the defaults 5 and 10:
// 1-5 warning, 6-10 danger, 11+ critical).
func OverdueLevelForDays(days, warnDays, dangerDays int) OverdueLevel {
	switch {
	case days <= 0:
		return OverdueLevelOK
	case days <= warnDays:
		return OverdueLevelWarning
	case days <= dangerDays:
		return OverdueLevelDanger
	default:
		return OverdueLevelCritical
	}
}
