package module

import casessvc "caseline/internal/services/cases/service"

// Ports is the port set cases exposes to other modules. Cases satisfies both
// domain.Opener and domain.Sweeper
type Ports struct {
	Cases casessvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service returns the case service
func (m *Module) Service() casessvc.Service { return m.ports.Cases }
