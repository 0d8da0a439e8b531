package typing

import "math"

// RhythmWindowSize is the number of intervals the detector keeps.
const RhythmWindowSize = 20

const (
	rhythmMinSamples = 3
	rhythmicAbove    = 0.7
)

// RhythmDetector scores how evenly spaced recent keystrokes are.
// 0 is erratic, 1 is a perfectly even cadence.
type RhythmDetector struct {
	intervals  []float64
	regularity float64
	average    float64
}

// NewRhythmDetector returns an empty detector.
func NewRhythmDetector() *RhythmDetector {
	return &RhythmDetector{intervals: make([]float64, 0, RhythmWindowSize)}
}

// Record appends an interval, evicting the oldest past capacity.
func (d *RhythmDetector) Record(intervalMs float64) {
	if len(d.intervals) == RhythmWindowSize {
		copy(d.intervals, d.intervals[1:])
		d.intervals = d.intervals[:RhythmWindowSize-1]
	}
	d.intervals = append(d.intervals, intervalMs)
	d.analyze()
}

func (d *RhythmDetector) analyze() {
	n := len(d.intervals)
	if n < rhythmMinSamples {
		return
	}
	var sum float64
	for _, v := range d.intervals {
		sum += v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range d.intervals {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n)

	cv := math.Sqrt(variance) / math.Max(mean, 0.001)
	d.average = mean
	d.regularity = math.Max(0, 1-math.Min(cv, 1))
}

// IsRhythmic reports whether regularity exceeds 0.7.
func (d *RhythmDetector) IsRhythmic() bool {
	return d.regularity > rhythmicAbove
}

// Regularity returns the last computed score in [0,1].
func (d *RhythmDetector) Regularity() float64 {
	return d.regularity
}

// AverageInterval returns the mean interval of the window in milliseconds.
func (d *RhythmDetector) AverageInterval() float64 {
	return d.average
}

// Len returns the number of intervals held.
func (d *RhythmDetector) Len() int {
	return len(d.intervals)
}

// Reset clears the window and scores.
func (d *RhythmDetector) Reset() {
	d.intervals = d.intervals[:0]
	d.regularity = 0
	d.average = 0
}
