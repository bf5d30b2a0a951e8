// Package repomanager builds repositories over a shared database handle and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avoronov/factura/internal/dbx"
	"github.com/avoronov/factura/internal/server/repositories/sessions"
	"github.com/avoronov/factura/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// run several repository calls inside one transaction via dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
