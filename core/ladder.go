package core

// ShiftLevel is a position on the six-step frequency shift ladder
type ShiftLevel int32

const (
	MinShiftLevel  ShiftLevel = -2
	ShiftLevelNone ShiftLevel = 0
	MaxShiftLevel  ShiftLevel = 3
)

// shiftSteps maps each ladder level to its (primary, secondary) phase steps.
// The secondary step either mirrors or negates the primary one.
var shiftSteps = [MaxShiftLevel - MinShiftLevel + 1][2]int32{
	{-5, 5},  // -2
	{-2, 2},  // -1
	{0, 0},   // 0
	{3, 3},   // +1
	{-7, 7},  // +2
	{11, 11}, // +3
}

// Valid reports whether l is on the ladder
func (l ShiftLevel) Valid() bool {
	return l >= MinShiftLevel && l <= MaxShiftLevel
}

// Steps returns the sine and cosine accumulator steps for the level.
// Off-ladder levels produce no shift.
func (l ShiftLevel) Steps() (primary, secondary int32) {
	if !l.Valid() {
		return 0, 0
	}
	s := shiftSteps[l-MinShiftLevel]
	return s[0], s[1]
}

// Up moves one step toward more positive shift, saturating at the top
func (l ShiftLevel) Up() ShiftLevel {
	if l >= MaxShiftLevel {
		return MaxShiftLevel
	}
	return l + 1
}

// Down moves one step toward more negative shift, saturating at the bottom
func (l ShiftLevel) Down() ShiftLevel {
	if l <= MinShiftLevel {
		return MinShiftLevel
	}
	return l - 1
}
