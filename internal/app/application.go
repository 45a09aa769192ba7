// Package app wires the engine's dependencies together for the HTTP
// surface and the command-line entrypoints.
package app

import (
	"log/slog"

	"workspace.busmate.lk/internal/config"
	"workspace.busmate.lk/internal/directory"
)

// Application holds the dependencies shared by handlers and commands:
// the resolved configuration, the logger, and the directory the engine
// reads from and submits to.
type Application struct {
	Config    config.Config
	Logger    *slog.Logger
	Directory directory.Directory
}
