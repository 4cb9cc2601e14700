package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/mocks"
)

type recordingServer struct {
	calls *[]string
	err   error
}

func (s recordingServer) Stop(ctx context.Context) error {
	*s.calls = append(*s.calls, "server")
	return s.err
}

type recordingPool struct {
	calls *[]string
}

func (p recordingPool) Ping(ctx context.Context) error { return nil }
func (p recordingPool) Close()                        { *p.calls = append(*p.calls, "db") }

func TestGracefulShutdown_Order(t *testing.T) {
	var calls []string
	svc := mocks.NewMockCityService(t)
	svc.On("Shutdown", mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "city")
	}).Return(errors.New("queue not drained"))

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:      recordingServer{calls: &calls, err: errors.New("forced")},
		CityService: svc,
		DBPool:      recordingPool{calls: &calls},
	})

	assert.Equal(t, []string{"server", "city", "db"}, calls)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"session_2026-01-04_00-00-00.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{names[2], names[3], "notes.txt"}, left)
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{LogLevel: "info", LogFormat: "json", LogDir: dir, Environment: "test"}

	l, f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, l)
	require.NotNil(t, f)
	t.Cleanup(func() { _ = f.Close() })

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	_, f, err := SetupLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestLoadRules(t *testing.T) {
	t.Run("shipped rule database", func(t *testing.T) {
		reg, err := LoadRules(&config.Config{RulesPath: "../../configs/resource_types.xml"})
		require.NoError(t, err)
		assert.Greater(t, reg.Len(), 0)
		assert.NotEmpty(t, reg.Digest())
	})

	t.Run("yaml rule database", func(t *testing.T) {
		reg, err := LoadRules(&config.Config{RulesPath: "../../configs/resource_types.yaml"})
		require.NoError(t, err)
		assert.Greater(t, reg.Len(), 0)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRules(&config.Config{RulesPath: filepath.Join(t.TempDir(), "nope.xml")})
		assert.ErrorContains(t, err, ErrMsgFailedLoadRules)
	})

	t.Run("empty database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xml")
		require.NoError(t, os.WriteFile(path, []byte("<ruleDatabase></ruleDatabase>"), 0o644))

		_, err := LoadRules(&config.Config{RulesPath: path})
		assert.ErrorContains(t, err, ErrMsgEmptyRules)
	})
}

func TestInitializePersistence_Disabled(t *testing.T) {
	p, err := InitializePersistence(context.Background(), &config.Config{PersistReports: false})
	require.NoError(t, err)
	assert.Nil(t, p.Pool)
	assert.Nil(t, p.Reports)
	assert.Nil(t, p.HealthPool())
	assert.Nil(t, p.Closer())
}

func TestInitializePersistence_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reports.db")
	p, err := InitializePersistence(context.Background(), &config.Config{
		PersistReports: true,
		ReportStore:    config.ReportStoreSQLite,
		SQLitePath:     path,
	})
	require.NoError(t, err)

	assert.Nil(t, p.Pool)
	require.NotNil(t, p.SQLite)
	require.NotNil(t, p.HealthPool())
	assert.NoError(t, p.HealthPool().Ping(context.Background()))
	assert.NotNil(t, p.Reports)
	assert.FileExists(t, path)

	var calls []string
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server: recordingServer{calls: &calls},
		Store:  p.Closer(),
	})
	assert.Equal(t, []string{"server"}, calls)
}

type failingCloser struct{ closed *bool }

func (c failingCloser) Close() error {
	*c.closed = true
	return errors.New("disk gone")
}

func TestGracefulShutdown_StoreCloseErrorIsLogged(t *testing.T) {
	closed := false
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Store: failingCloser{closed: &closed}})
	})
	assert.True(t, closed)
}
