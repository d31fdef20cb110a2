package logging

import (
	"log/slog"

	"schemacore/pkg/primitives"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("emission")
//	log.Debug("pass started", "mode", mode)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithLibrary creates a logger scoped to a catalog library.
func WithLibrary(library string) *slog.Logger {
	return GetLogger().With("library", library)
}

// WithObject creates a logger with catalog object context.
//
// Example:
//
//	log := logging.WithObject(obj.ID(), obj.Name())
//	log.Debug("emitting", "kind", obj.Kind())
func WithObject(id primitives.ObjectID, name string) *slog.Logger {
	return GetLogger().With("object_id", int64(id), "object", name)
}

// WithSession creates a logger with session context.
func WithSession(sessionID primitives.SessionID) *slog.Logger {
	return GetLogger().With("session_id", uint32(sessionID))
}

// WithError creates a logger with error context.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
