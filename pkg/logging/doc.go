// Package logging provides a process-wide structured logger for schemacore.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. Catalog loading,
// dependency inclusion and statement emission obtain their loggers here so
// log level and output destination are controlled from a single place.
//
// # Initialisation
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug}); err != nil {
//	    log.Fatal(err)
//	}
//
// InitDefault writes WARN-level logs to stderr without a log file.
//
// # Context helpers
//
//	log := logging.WithComponent("emission") // adds component field
//	log := logging.WithObject(id, name)      // adds object_id and object fields
//	log := logging.WithLibrary(name)         // adds library field
package logging
