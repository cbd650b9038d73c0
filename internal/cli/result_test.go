package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rushly/internal/daily"
	"rushly/internal/ledger"
)

var recordedAt = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// seedLedger writes one scoped record into a fresh bolt ledger and returns its path.
func seedLedger(t *testing.T, player, game string, success bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := ledger.OpenBolt(path)
	require.NoError(t, err)
	l := ledger.New(store, daily.FixedClock(recordedAt)).Scoped(ledger.PlayerScope(player))
	require.NoError(t, l.RecordResult(context.Background(), game, "Thu Oct 15 2026", success))
	require.NoError(t, store.Close())
	return path
}

func TestResultCommand_Found(t *testing.T) {
	path := seedLedger(t, "p1", "music", true)

	out, err := execute(t, "result", "--game", "music", "--date", "2026-10-15",
		"--player", "p1", "--backend", "bolt", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "music Thu Oct 15 2026: succeeded at 2026-10-15T12:00:00Z\n", out)
}

func TestResultCommand_JSON(t *testing.T) {
	path := seedLedger(t, "p1", "word", false)

	out, err := execute(t, "result", "--game", "word", "--date", "2026-10-15",
		"--player", "p1", "--backend", "bolt", "--path", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ResultView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Found)
	require.NotNil(t, resp.Data.Success)
	assert.False(t, *resp.Data.Success)
	require.NotNil(t, resp.Data.Timestamp)
	assert.True(t, recordedAt.Equal(*resp.Data.Timestamp))
}

func TestResultCommand_NoRecord(t *testing.T) {
	path := seedLedger(t, "p1", "color", true)

	cases := []struct {
		name string
		args []string
	}{
		{"other player", []string{"--player", "p2"}},
		{"unscoped", nil},
		{"other game", []string{"--player", "p1", "--game", "word"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"result", "--game", "color", "--date", "2026-10-15", "--backend", "bolt", "--path", path}, tc.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "no record")
		})
	}
}

func TestResultCommand_UnknownGame(t *testing.T) {
	_, err := execute(t, "result", "--game", "chess", "--backend", "memory")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestResultCommand_UnknownBackend(t *testing.T) {
	_, err := execute(t, "result", "--game", "color", "--backend", "etcd")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestResultCommand_RequiresGame(t *testing.T) {
	_, err := execute(t, "result", "--backend", "memory")
	require.Error(t, err)
}
