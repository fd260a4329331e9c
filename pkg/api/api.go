package api

import (
	"github.com/driftline/dispatch/internal/core"
	"github.com/driftline/dispatch/internal/notify"
	"github.com/driftline/dispatch/pkg/database"
	"github.com/driftline/dispatch/pkg/structs"
)

func NewAPI(db database.Database, nt *notify.Notifier, opts *structs.Options) (API, error) {
	return core.NewService(db, nt, opts)
}
