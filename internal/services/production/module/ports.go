package module

import "linetrack/internal/services/production/domain"

// Ports is what the production module offers: its service and the report history reports reads
type Ports struct {
	Service domain.ServicePort
	History domain.HistoryPort
}

func (m *Module) Ports() any { return m.ports }
