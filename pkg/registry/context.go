package registry

import (
	"log/slog"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/logging"
	"schemacore/pkg/primitives"
)

// SessionContext holds the shared components an emission or dependency
// walk needs. It is the opaque session handle the core threads through;
// one SessionContext belongs to one pass at a time.
type SessionContext struct {
	sessionID primitives.SessionID
	catalog   *object.Catalog
	logger    *slog.Logger
	user      string
}

// NewSessionContext creates a session over the given catalog.
func NewSessionContext(sessionID primitives.SessionID, catalog *object.Catalog, user string) *SessionContext {
	return &SessionContext{
		sessionID: sessionID,
		catalog:   catalog,
		logger:    logging.WithSession(sessionID),
		user:      user,
	}
}

func (ctx *SessionContext) SessionID() primitives.SessionID {
	return ctx.sessionID
}

func (ctx *SessionContext) Catalog() *object.Catalog {
	return ctx.catalog
}

func (ctx *SessionContext) Logger() *slog.Logger {
	return ctx.logger
}

func (ctx *SessionContext) User() string {
	return ctx.user
}

// WithCatalog returns a copy of the session bound to another catalog.
// Parallel passes use it to give each pass its own target.
func (ctx *SessionContext) WithCatalog(catalog *object.Catalog) *SessionContext {
	copied := *ctx
	copied.catalog = catalog
	return &copied
}

var _ object.Session = (*SessionContext)(nil)
