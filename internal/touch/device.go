package touch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/pleimann/glide-pad/internal/utils"
)

// Device is a connection to the touch pad over raw HID.
type Device struct {
	vendorID  uint16
	productID uint16

	mu     sync.Mutex
	device *hid.Device
	closed bool
}

// Open connects to a touch pad with the given vendor and product IDs. When
// the pad exposes several interfaces it tries each until one opens.
func Open(vendorID, productID uint16) (*Device, error) {
	infos := hid.Enumerate(vendorID, productID)
	if len(infos) == 0 {
		if len(hid.Enumerate(0, 0)) == 0 {
			return nil, fmt.Errorf("no HID devices found on system - check USB connection")
		}
		exe := utils.ExecutableName()
		return nil, fmt.Errorf("no device found with VendorID=0x%04X, ProductID=0x%04X\n"+
			"  Run '%s list-devices' to see available devices\n"+
			"  Run '%s set-device' to configure the correct device",
			vendorID, productID, exe, exe)
	}

	var lastErr error
	for _, info := range infos {
		dev, err := info.Open()
		if err == nil {
			return &Device{vendorID: vendorID, productID: productID, device: dev}, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to open any of %d interfaces for device 0x%04X:0x%04X: %w\n"+
		"  This may be a permissions issue. On macOS, add your terminal app under\n"+
		"  System Settings > Privacy & Security > Input Monitoring",
		len(infos), vendorID, productID, lastErr)
}

// Close closes the connection. Closing twice is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.device != nil {
		return d.device.Close()
	}
	return nil
}

// Pump reads touch reports from the pad and delivers them to the surface
// until the context is cancelled or the device fails. Malformed reports are
// skipped, not fatal.
func (d *Device) Pump(ctx context.Context, surface *EventSurface) error {
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return fmt.Errorf("device closed")
		}
		dev := d.device
		d.mu.Unlock()

		n, err := dev.Read(buf)
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}
		if n == 0 {
			continue
		}

		report, err := ParseReport(buf[:n])
		if err != nil {
			continue
		}
		surface.Deliver(report)
	}
}

// Write sends a raw report to the pad.
func (d *Device) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("device closed")
	}
	_, err := d.device.Write(data)
	return err
}

// SendFrame sends a display frame to the pad's OLED.
func (d *Device) SendFrame(frame *DisplayFrame) error {
	return d.Write(frame.Encode())
}

// SetNativeGestures toggles the firmware's own gesture synthesis.
func (d *Device) SetNativeGestures(enabled bool) error {
	return d.Write(EncodeNativeGestures(enabled))
}

// Reconnect drops any existing connection and tries to open the pad again.
func (d *Device) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.device != nil {
		d.device.Close()
		d.device = nil
	}
	d.closed = false

	infos := hid.Enumerate(d.vendorID, d.productID)
	if len(infos) == 0 {
		return fmt.Errorf("device not found")
	}

	var lastErr error
	for _, info := range infos {
		dev, err := info.Open()
		if err == nil {
			d.device = dev
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to open device: %w", lastErr)
}

// WaitForDevice polls until the pad becomes available and connects to it.
func (d *Device) WaitForDevice(ctx context.Context, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Reconnect(); err == nil {
				return nil
			}
		}
	}
}
