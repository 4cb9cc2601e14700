package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/logger"
)

// SetupLogger installs the default logger. When cfg.LogDir is set, output is
// also written to a timestamped session file there and older sessions are pruned.
// The returned file is nil when logging to stdout only; the caller closes it.
func SetupLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	var (
		w       io.Writer = os.Stdout
		logFile *os.File
	)

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(os.Stdout, f)
	}

	lcfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment,
		cfg.Environment == logger.EnvironmentDev)
	l := logger.InitLoggerWithWriter(lcfg, w)

	l.Info(LogMsgLoggingInitialized, "level", lcfg.LogLevel().String(), "format", lcfg.Format)
	l.Info(LogMsgStarting, "log_dir", cfg.LogDir)
	l.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"rules_path", cfg.RulesPath,
		"strict_parity", cfg.StrictParity,
		"recompute_workers", cfg.RecomputeWorkers,
		"persist_reports", cfg.PersistReports,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName)

	return l, logFile, nil
}

// cleanupLogs keeps the newest keep session files in logDir. Session names
// embed a sortable timestamp, so name order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
