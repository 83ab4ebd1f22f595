package core

// CodecConfig is the register interface of the audio codec's control port
type CodecConfig interface {
	WriteRegister(addr uint8, value uint16) error
}

// Codec control registers
const (
	RegLeftLineIn      uint8 = 0x0
	RegRightLineIn     uint8 = 0x1
	RegLeftHeadphone   uint8 = 0x2
	RegRightHeadphone  uint8 = 0x3
	RegAnalogPath      uint8 = 0x4
	RegDigitalPath     uint8 = 0x5
	RegPowerDown       uint8 = 0x6
	RegDigitalFormat   uint8 = 0x7
	RegSamplingControl uint8 = 0x8
	RegActive          uint8 = 0x9
	RegReset           uint8 = 0xf

	// volumeRegisterFlags is or'ed into every headphone volume write
	// (update both channels, zero-cross detect)
	volumeRegisterFlags = 0x180
)

type codecWrite struct {
	addr  uint8
	value uint16
}

// codecInitSequence is the stock startup configuration
var codecInitSequence = []codecWrite{
	{RegLeftLineIn, 0x17},
	{RegRightLineIn, 0x17},
	{RegLeftHeadphone, 0x79},
	{RegRightHeadphone, 0x79},
	{RegAnalogPath, 0x15},
	{RegDigitalPath, 0x06},
	{RegPowerDown, 0x00},
}

// InitCodec resets the codec and writes the startup configuration
func InitCodec(c CodecConfig) error {
	if err := c.WriteRegister(RegReset, 0); err != nil {
		return err
	}
	for _, w := range codecInitSequence {
		if err := c.WriteRegister(w.addr, w.value); err != nil {
			return err
		}
	}
	return nil
}

// VolumeRegisterValue converts a volume level into the headphone register value
func VolumeRegisterValue(volume int32) uint16 {
	return uint16(volume) + volumeRegisterFlags
}

// VolumeFromRegister recovers the volume level from a headphone register value
func VolumeFromRegister(value uint16) int32 {
	return int32(value &^ volumeRegisterFlags)
}
