package difficulty

// IncrementalAverage folds one new sample into a running average. It
// is applied exactly once per (puzzle, user), the first time that user
// completes the puzzle; oldCount is the puzzle's completion count
// before this event. A nil oldAvg means no prior data, a nil newValue
// contributes nothing.
func IncrementalAverage(oldAvg *float64, oldCount int, newValue *float64) *float64 {
	if oldAvg == nil {
		return newValue
	}
	if newValue == nil {
		return oldAvg
	}
	avg := (*oldAvg*float64(oldCount) + *newValue) / float64(oldCount+1)
	return &avg
}

// CorrectiveAverage replaces one sample's contribution inside an
// existing average, used when a user redoes a puzzle with a different
// rating. count is the current completions total: the average already
// reflects all count samples and must stay divided by count. When the
// original per-user sample was never recorded (nil oldValue) the
// average itself substitutes for it, an accepted approximation.
func CorrectiveAverage(oldAvg *float64, count int, oldValue, newValue *float64) *float64 {
	if oldAvg == nil {
		return newValue
	}
	if newValue == nil {
		return oldAvg
	}
	if oldValue != nil && *oldValue == *newValue {
		return oldAvg
	}
	old := *oldAvg
	if oldValue != nil {
		old = *oldValue
	}
	avg := *oldAvg - old/float64(count) + *newValue/float64(count)
	return &avg
}
