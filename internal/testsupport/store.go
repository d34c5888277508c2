package testsupport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nimbus/internal/config"
	"nimbus/internal/history"
)

// MustOpenHistory opens the history store for cfg and closes it on cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	require.NoError(t, err, "history.Open")
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
