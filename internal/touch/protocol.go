package touch

import (
	"encoding/binary"
	"fmt"
)

// Report IDs
const (
	ReportIDTouchEvent byte = 0x01
	ReportIDDisplay    byte = 0x02
	ReportIDControl    byte = 0x03
)

// Touch phases
const (
	PhaseDownByte   byte = 0x01
	PhaseMoveByte   byte = 0x02
	PhaseUpByte     byte = 0x03
	PhaseCancelByte byte = 0x04
)

// Control commands
const (
	ControlNativeGestures byte = 0x01
)

// Display commands
const (
	DisplayCmdFullFrame byte = 0x01
	DisplayCmdPartial   byte = 0x02
	DisplayCmdClear     byte = 0x03
)

// MaxContacts is the number of contact slots in a touch report. The pad
// tracks at most two simultaneous contacts.
const MaxContacts = 2

// Phase is the touch phase of a report.
type Phase byte

const (
	PhaseDown   Phase = Phase(PhaseDownByte)
	PhaseMove   Phase = Phase(PhaseMoveByte)
	PhaseUp     Phase = Phase(PhaseUpByte)
	PhaseCancel Phase = Phase(PhaseCancelByte)
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", byte(p))
	}
}

// Contact is one touch position in pad coordinates.
type Contact struct {
	X uint16
	Y uint16
}

// Report is a decoded touch report from the pad.
type Report struct {
	Phase     Phase
	Contacts  []Contact
	Timestamp uint32 // ms since device boot
}

// ParseReport decodes a raw HID touch report.
// Expected format (16 bytes):
//
//	Byte 0:     Report ID (0x01)
//	Byte 1:     Phase (0x01=down, 0x02=move, 0x03=up, 0x04=cancel)
//	Byte 2:     Contact count (0..2)
//	Byte 3:     Reserved
//	Byte 4-7:   Contact 0: x, y (uint16 little-endian each)
//	Byte 8-11:  Contact 1: x, y
//	Byte 12-15: Timestamp (ms since boot, little-endian u32)
//
// Both contact slots are always present on the wire; the count selects how
// many are live.
func ParseReport(data []byte) (*Report, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("touch report too short: %d bytes", len(data))
	}
	if data[0] != ReportIDTouchEvent {
		return nil, fmt.Errorf("unexpected report ID: 0x%02X", data[0])
	}

	phase := data[1]
	if phase < PhaseDownByte || phase > PhaseCancelByte {
		return nil, fmt.Errorf("unknown touch phase: 0x%02X", phase)
	}

	count := int(data[2])
	if count > MaxContacts {
		return nil, fmt.Errorf("contact count %d exceeds %d slots", count, MaxContacts)
	}

	contacts := make([]Contact, count)
	for i := 0; i < count; i++ {
		off := 4 + i*4
		contacts[i] = Contact{
			X: binary.LittleEndian.Uint16(data[off : off+2]),
			Y: binary.LittleEndian.Uint16(data[off+2 : off+4]),
		}
	}

	return &Report{
		Phase:     Phase(phase),
		Contacts:  contacts,
		Timestamp: binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

// EncodeReport serializes a Report into the wire format above, the inverse
// of ParseReport.
func EncodeReport(r *Report) []byte {
	buf := make([]byte, 16)
	buf[0] = ReportIDTouchEvent
	buf[1] = byte(r.Phase)
	buf[2] = byte(len(r.Contacts))
	for i, c := range r.Contacts {
		if i >= MaxContacts {
			break
		}
		off := 4 + i*4
		binary.LittleEndian.PutUint16(buf[off:off+2], c.X)
		binary.LittleEndian.PutUint16(buf[off+2:off+4], c.Y)
	}
	binary.LittleEndian.PutUint32(buf[12:16], r.Timestamp)
	return buf
}

// EncodeNativeGestures builds the control report toggling the pad's firmware
// gesture handling. The engine turns it off while attached so the firmware's
// own tap and scroll synthesis cannot race host-side recognition.
func EncodeNativeGestures(enabled bool) []byte {
	v := byte(0x00)
	if enabled {
		v = 0x01
	}
	return []byte{ReportIDControl, ControlNativeGestures, v}
}

// DisplayFrame is a frame destined for the pad's OLED.
type DisplayFrame struct {
	Command byte
	X       uint16
	Y       uint16
	Width   uint16
	Height  uint16
	Data    []byte // 1-bit packed pixel data, row-major
}

// Encode serializes the frame for transmission.
// Format:
//
//	Byte 0:   Report ID (0x02)
//	Byte 1:   Command (0x01=full frame, 0x02=partial, 0x03=clear)
//	Byte 2-3: X offset
//	Byte 4-5: Y offset
//	Byte 6-7: Width
//	Byte 8-9: Height
//	Byte 10+: Pixel data
func (f *DisplayFrame) Encode() []byte {
	const headerSize = 10
	buf := make([]byte, headerSize+len(f.Data))

	buf[0] = ReportIDDisplay
	buf[1] = f.Command
	binary.LittleEndian.PutUint16(buf[2:4], f.X)
	binary.LittleEndian.PutUint16(buf[4:6], f.Y)
	binary.LittleEndian.PutUint16(buf[6:8], f.Width)
	binary.LittleEndian.PutUint16(buf[8:10], f.Height)
	copy(buf[headerSize:], f.Data)

	return buf
}

// FullFrame builds a full-frame display update.
func FullFrame(width, height uint16, data []byte) *DisplayFrame {
	return &DisplayFrame{Command: DisplayCmdFullFrame, Width: width, Height: height, Data: data}
}

// PartialFrame builds a partial display update.
func PartialFrame(x, y, width, height uint16, data []byte) *DisplayFrame {
	return &DisplayFrame{Command: DisplayCmdPartial, X: x, Y: y, Width: width, Height: height, Data: data}
}

// ClearFrame builds a display clear command.
func ClearFrame() *DisplayFrame {
	return &DisplayFrame{Command: DisplayCmdClear}
}
