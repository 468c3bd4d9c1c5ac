// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tasklist/internal/adapters/config"
	_ "go.trai.ch/tasklist/internal/adapters/logger"
	_ "go.trai.ch/tasklist/internal/adapters/storage"
	_ "go.trai.ch/tasklist/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/tasklist/internal/app"
)
