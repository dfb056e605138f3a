// Package module defines the contract every API module satisfies
package module

import (
	phttp "linetrack/internal/platform/net/http"
)

// Module is what the API composer mounts
// it lives apart from modkit so a module can import it next to its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
