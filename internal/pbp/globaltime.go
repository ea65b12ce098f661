package pbp

import "fmt"

const (
	// HalfLength is the length of each regulation period in minutes
	HalfLength = 20.0
	// OvertimeLength is the length of every period after the second
	OvertimeLength = 5.0
	// RegulationPeriods is the number of HalfLength periods
	RegulationPeriods = 2
)

// PeriodLength returns the nominal length of a 1-indexed period
func PeriodLength(period int) float64 {
	if period <= RegulationPeriods {
		return HalfLength
	}
	return OvertimeLength
}

// periodStart returns the minutes elapsed before a period begins
func periodStart(period int) float64 {
	if period <= RegulationPeriods {
		return HalfLength * float64(period-1)
	}
	return HalfLength*RegulationPeriods + OvertimeLength*float64(period-RegulationPeriods-1)
}

// ToGlobalTime maps a countdown within a period onto minutes since tip-off.
// There is no upper bound on period: every overtime adds another 5 minutes.
func ToGlobalTime(countdown float64, period int) (float64, error) {
	if period < 1 {
		return 0, fmt.Errorf("period must be >= 1, got %d", period)
	}
	return globalTime(countdown, period), nil
}

func globalTime(countdown float64, period int) float64 {
	return periodStart(period) + (PeriodLength(period) - countdown)
}
