package netsys

import (
	"fmt"
	"net"
)

// SystemInterfaces lists interfaces via the standard library.
type SystemInterfaces struct{}

// Interfaces returns every interface the OS reports.  Up requires both
// the administrative flag and a running carrier.
func (SystemInterfaces) Interfaces() ([]Interface, error) {
	sys, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(sys))
	for _, ifc := range sys {
		out = append(out, Interface{
			Name:         ifc.Name,
			Up:           ifc.Flags&net.FlagUp != 0 && ifc.Flags&net.FlagRunning != 0,
			Loopback:     ifc.Flags&net.FlagLoopback != 0,
			HardwareAddr: ifc.HardwareAddr,
		})
	}
	return out, nil
}
