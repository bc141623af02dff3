package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focusly/internal/adapters/retry"
	"focusly/internal/application"
	"focusly/internal/config"
	"focusly/internal/domain"
)

func TestOpen_WiresEngineToStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FOCUSLY_LOG_PATH", filepath.Join(dir, "focusly.log"))
	t.Setenv("FOCUSLY_TIMER_WORK_SECONDS", "60")
	t.Setenv("FOCUSLY_PROVIDER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	ctx := context.Background()
	dbPath := filepath.Join(dir, "state.db")

	rt, err := Open(ctx, Overrides{DataPath: dbPath})
	require.NoError(t, err)
	assert.Equal(t, dbPath, rt.Store.Path())
	assert.Equal(t, 60, rt.Engine.Timer().Duration)

	_, err = rt.Engine.AddNode(ctx, "Persisted", domain.NodeTypeSignal)
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	reopened, err := Open(ctx, Overrides{DataPath: dbPath})
	require.NoError(t, err)
	defer reopened.Close()

	nodes := reopened.Engine.Nodes(application.NodeFilter{})
	require.Len(t, nodes, 1)
	assert.Equal(t, "Persisted", nodes[0].Title)
}

func TestNewProvider_UnavailableWithoutKey(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderConfig{Backend: config.BackendGenAI}}

	p := NewProvider(cfg, zap.NewNop(), nil)
	assert.IsType(t, &retry.Provider{}, p)
	assert.False(t, p.Available())
}
