package module

import "linetrack/internal/services/reports/domain"

// Ports is what the reports module offers the rest of the API
type Ports struct {
	Service domain.ServicePort
}

func (m *Module) Ports() any { return m.ports }
