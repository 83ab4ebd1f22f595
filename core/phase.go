package core

import "math"

const (
	// PhaseTableLength is the number of entries in one carrier period
	PhaseTableLength = 320

	// CosineOffset puts the cosine accumulator a quarter period ahead
	CosineOffset = PhaseTableLength / 4

	// CarrierAmplitude is the peak value of the carrier table
	CarrierAmplitude = 32767
)

// PhaseTable holds one period of the carrier sinusoid
type PhaseTable [PhaseTableLength]Sample

// NewSineTable builds the carrier lookup table
func NewSineTable() *PhaseTable {
	t := &PhaseTable{}
	for i := range t {
		t[i] = Sample(math.Round(CarrierAmplitude * math.Sin(2*math.Pi*float64(i)/PhaseTableLength)))
	}
	return t
}

// At returns the table entry for a phase index
func (t *PhaseTable) At(i PhaseIndex) Sample {
	return t[i]
}

// PhaseIndex is a position in the carrier table, always in [0, PhaseTableLength)
type PhaseIndex int32

// Advance moves the index by step and wraps it back into the table.
// One conditional correction suffices: every ladder step is far smaller
// than the table length.
func (i PhaseIndex) Advance(step int32) PhaseIndex {
	n := int32(i) + step
	if n >= PhaseTableLength {
		n -= PhaseTableLength
	} else if n < 0 {
		n += PhaseTableLength
	}
	return PhaseIndex(n)
}
