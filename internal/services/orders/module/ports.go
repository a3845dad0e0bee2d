package module

import ordersdom "caseline/internal/services/orders/domain"

// Ports is the port set orders exposes to other modules
type Ports struct {
	Orders ordersdom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service returns the order service port
func (m *Module) Service() ordersdom.ServicePort { return m.ports.Orders }
