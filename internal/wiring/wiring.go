// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/skeinlabs/gcx/internal/adapters/config"
	_ "github.com/skeinlabs/gcx/internal/adapters/logger"
	_ "github.com/skeinlabs/gcx/internal/adapters/oracle"
	_ "github.com/skeinlabs/gcx/internal/adapters/store"
	_ "github.com/skeinlabs/gcx/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/skeinlabs/gcx/internal/app"
)
