package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/osse101/CityProduction_Go/internal/city"
	"github.com/osse101/CityProduction_Go/internal/database"
)

// stoppable is the part of *server.Server used during shutdown
type stoppable interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server      stoppable
	CityService city.Service
	DBPool      database.Pool // nil without persistence
	Store       io.Closer     // SQLite report store, nil otherwise
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new recomputations)
// 2. City service (drain queued report writes)
// 3. Database pool or report store (after the last write)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.CityService != nil {
		slog.Info(LogMsgDrainingReports)
		if err := components.CityService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgCityShutdownFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
		slog.Info(LogMsgDatabaseClosed)
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		} else {
			slog.Info(LogMsgStoreClosed)
		}
	}

	slog.Info(LogMsgServerStopped)
}
