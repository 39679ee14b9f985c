package touch

import (
	"github.com/karalabe/hid"
)

// DeviceInfo describes a discovered HID device.
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
}

// ListDevices enumerates every HID device on the system.
func ListDevices() ([]DeviceInfo, error) {
	infos := hid.Enumerate(0, 0)

	result := make([]DeviceInfo, len(infos))
	for i, d := range infos {
		result[i] = DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Path:         d.Path,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			SerialNumber: d.Serial,
		}
	}
	return result, nil
}
