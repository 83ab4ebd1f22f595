// Package display renders the configuration record on a two-line
// character display.
package display

import "voicemanip/core"

// Width is the number of characters per display line
const Width = 16

// Screen is a two-line character display
type Screen interface {
	Show(top, bottom string) error
}

// Slot titles, one per parameter slot
const (
	TitleVolume        = "Volume:"
	TitleEchoDelay     = "Echo Delay:"
	TitleEchoReduction = "Echo Reduction:"
	TitleFreqShift     = "Frequency Shift:"
)

// Render formats the active slot of s as the two display lines
func Render(s core.Snapshot) (top, bottom string) {
	switch s.Slot {
	case core.SlotVolume:
		return TitleVolume, core.Itoa(int(VolumeStep(s.Volume)))
	case core.SlotEchoDelay:
		return TitleEchoDelay, "0." + core.Itoa(int(EchoDelayTenths(s.EchoDelay))) + "s"
	case core.SlotEchoReduction:
		if s.EchoReduction == core.EchoReductionOff {
			return TitleEchoReduction, "Off"
		}
		return TitleEchoReduction, "On"
	case core.SlotFreqShift:
		return TitleFreqShift, core.Itoa(int(s.ShiftLevel))
	}
	return "", ""
}

// VolumeStep maps a raw volume level to the -6..+6 steps shown to the user
func VolumeStep(volume int32) int32 {
	return (volume - core.DefaultVolume) / core.VolumeStep
}

// EchoDelayTenths maps a raw echo delay to tenths of a second of delay
func EchoDelayTenths(delay int32) int32 {
	return (core.MaxEchoDelay - delay) / core.EchoDelayStep
}
