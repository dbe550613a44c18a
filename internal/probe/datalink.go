package probe

import (
	"context"
	"fmt"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
)

// DataLinkProbe verifies that an active interface carries a valid
// (non-zero) link-layer address.
type DataLinkProbe struct {
	Ifaces netsys.InterfaceLister
}

func (p *DataLinkProbe) Layer() Layer { return DataLink }

func (p *DataLinkProbe) Run(ctx context.Context) Result {
	ifaces, err := p.Ifaces.Interfaces()
	if err != nil {
		return Result{
			Layer:   DataLink,
			Status:  Fail,
			Message: errors.Wrap(DataLink.String(), "list interfaces", "", err).Error(),
		}
	}

	for _, ifc := range ifaces {
		if !ifc.Up || ifc.Loopback {
			continue
		}
		if hasHardwareAddr(ifc) {
			return Result{
				Layer:   DataLink,
				Status:  Pass,
				Message: fmt.Sprintf("interface %s has link-layer address %s", ifc.Name, ifc.HardwareAddr),
			}
		}
	}

	return Result{
		Layer:   DataLink,
		Status:  Fail,
		Message: "no link-layer address assigned on any active interface",
	}
}

// hasHardwareAddr reports whether the interface carries a non-zero MAC.
// Tunnel devices often report an empty or all-zero address.
func hasHardwareAddr(ifc netsys.Interface) bool {
	if len(ifc.HardwareAddr) == 0 {
		return false
	}
	for _, b := range ifc.HardwareAddr {
		if b != 0 {
			return true
		}
	}
	return false
}
