package configwatcher

import (
	"os"
	"path/filepath"
	"stats_hub_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `server:
  port: "8080"
  mode: debug
statistics:
  modules: [study, sleep]
`

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	reloaded := make(chan *config.Config, 1)
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(file, func(cfg *config.Config) { reloaded <- cfg }, stop)
	}()

	// 等待 watcher 注册完成
	time.Sleep(200 * time.Millisecond)
	updated := baseConfig + "  fetch_concurrency: 3\n"
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, []string{"study", "sleep"}, cfg.Statistics.Modules)
		assert.Equal(t, 3, cfg.Statistics.FetchConcurrency)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	close(stop)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfig_MissingDirectory(t *testing.T) {
	err := WatchConfig(filepath.Join(t.TempDir(), "missing", "config.yaml"), func(*config.Config) {}, make(chan struct{}))
	assert.Error(t, err)
}

func TestWatchConfig_KeepsRunningAfterInvalidModule(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))

	reloaded := make(chan *config.Config, 2)
	stop := make(chan struct{})
	defer close(stop)
	go WatchConfig(file, func(cfg *config.Config) { reloaded <- cfg }, stop)

	time.Sleep(200 * time.Millisecond)
	bad := "server:\n  mode: debug\nstatistics:\n  modules: [study, journal]\n"
	require.NoError(t, os.WriteFile(file, []byte(bad), 0o644))

	select {
	case <-reloaded:
		t.Fatal("invalid config must not be applied")
	case <-time.After(2500 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0o644))
	select {
	case cfg := <-reloaded:
		assert.Equal(t, []string{"study", "sleep"}, cfg.Statistics.Modules)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded after fix")
	}
}
