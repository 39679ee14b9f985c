package display

import (
	"github.com/pleimann/glide-pad/internal/touch"
)

// FrameEncoder encodes rendered frames for transmission to the device
type FrameEncoder struct {
	width  int
	height int
}

// NewFrameEncoder creates a new frame encoder
func NewFrameEncoder(width, height int) *FrameEncoder {
	return &FrameEncoder{
		width:  width,
		height: height,
	}
}

// EncodeFullFrame creates a full frame display command
func (e *FrameEncoder) EncodeFullFrame(data []byte) *touch.DisplayFrame {
	return touch.FullFrame(uint16(e.width), uint16(e.height), data)
}

// EncodePartialFrame creates a partial frame display command
func (e *FrameEncoder) EncodePartialFrame(x, y, width, height int, data []byte) *touch.DisplayFrame {
	return touch.PartialFrame(
		uint16(x), uint16(y),
		uint16(width), uint16(height),
		data,
	)
}

// EncodeClear creates a display clear command
func (e *FrameEncoder) EncodeClear() *touch.DisplayFrame {
	return touch.ClearFrame()
}

// MaxPayloadSize returns the maximum data payload size for a single HID
// report: 64 bytes minus the 10 byte frame header.
func (e *FrameEncoder) MaxPayloadSize() int {
	return 54
}

// ChunkFrame splits a full frame buffer into partial frames that fit within
// HID report size limits. Chunks are whole rows.
func (e *FrameEncoder) ChunkFrame(data []byte) []*touch.DisplayFrame {
	bytesPerRow := (e.width + 7) / 8
	rowsPerChunk := e.MaxPayloadSize() / bytesPerRow
	if rowsPerChunk == 0 {
		rowsPerChunk = 1
	}

	var frames []*touch.DisplayFrame
	y := 0

	for y < e.height {
		chunkHeight := rowsPerChunk
		if y+chunkHeight > e.height {
			chunkHeight = e.height - y
		}

		startByte := y * bytesPerRow
		endByte := (y + chunkHeight) * bytesPerRow
		if endByte > len(data) {
			endByte = len(data)
		}

		frames = append(frames, touch.PartialFrame(
			0, uint16(y),
			uint16(e.width), uint16(chunkHeight),
			data[startByte:endByte],
		))

		y += chunkHeight
	}

	return frames
}
