package probe

import (
	"context"
	"fmt"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
)

// PhysicalProbe verifies that at least one non-loopback interface is
// up with carrier present.
type PhysicalProbe struct {
	Ifaces netsys.InterfaceLister
}

func (p *PhysicalProbe) Layer() Layer { return Physical }

func (p *PhysicalProbe) Run(ctx context.Context) Result {
	ifaces, err := p.Ifaces.Interfaces()
	if err != nil {
		return Result{
			Layer:   Physical,
			Status:  Fail,
			Message: errors.Wrap(Physical.String(), "list interfaces", "", err).Error(),
		}
	}

	for _, ifc := range ifaces {
		if ifc.Up && !ifc.Loopback {
			return Result{
				Layer:   Physical,
				Status:  Pass,
				Message: fmt.Sprintf("interface %s is up", ifc.Name),
			}
		}
	}

	return Result{
		Layer:   Physical,
		Status:  Fail,
		Message: "no active network interface",
	}
}
