package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusdial/internal/adapters/storage"
	"github.com/xvierd/focusdial/internal/domain"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

// withHome points the CLI at a scratch home directory.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dbPath = ""
	historyLimit = 10
	historyJSON = false
	t.Cleanup(func() {
		_ = cleanupServices()
		dbPath = ""
	})
	return home
}

func TestRootCmd_Structure(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "focusdial", rootCmd.Use)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"actuator", "history", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmd_Help(t *testing.T) {
	withHome(t)

	stdout, _, err := executeCmd(rootCmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "focusdial")
	assert.Contains(t, stdout, "simulator")
}

func TestRootCmd_Flags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("db"), "--db flag should be registered")

	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v, "--verbose flag should be registered")
	assert.Equal(t, "v", v.Shorthand)
}

func TestActuatorCmd(t *testing.T) {
	withHome(t)

	stdout, _, err := executeCmd(rootCmd, "actuator")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No actuator position stored")

	stdout, _, err = executeCmd(rootCmd, "actuator", "set", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Actuator position set to 42.")

	stdout, _, err = executeCmd(rootCmd, "actuator")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Actuator position: 42")
}

func TestActuatorSetCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"not a number", "high", "must be a whole number"},
		{"above range", "101", "must be between 0 and 100"},
		{"below range", "-1", "must be between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withHome(t)

			_, _, err := executeCmd(rootCmd, "actuator", "set", "--", tt.arg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHistoryCmd(t *testing.T) {
	home := withHome(t)
	db := home + "/history.db"

	t.Run("empty journal", func(t *testing.T) {
		stdout, _, err := executeCmd(rootCmd, "--db", db, "history")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No focus sessions yet.")
	})

	st, err := storage.New(db)
	require.NoError(t, err)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	done := domain.NewFocusSession(30*time.Minute, start)
	done.Finish(domain.SessionOutcomeCompleted, start.Add(32*time.Minute), 2*time.Minute)
	stopped := domain.NewFocusSession(45*time.Minute, start.Add(time.Hour))
	stopped.Finish(domain.SessionOutcomeStopped, start.Add(time.Hour+10*time.Minute), 0)
	require.NoError(t, st.Sessions().Save(context.Background(), done))
	require.NoError(t, st.Sessions().Save(context.Background(), stopped))
	require.NoError(t, st.Close())

	t.Run("text output", func(t *testing.T) {
		stdout, _, err := executeCmd(rootCmd, "--db", db, "history")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Focus sessions (2):")
		assert.Contains(t, stdout, "Completed")
		assert.Contains(t, stdout, "Stopped")
		assert.Contains(t, stdout, "paused 2m")
		assert.Contains(t, stdout, "focused 10m")
	})

	t.Run("json output with limit", func(t *testing.T) {
		stdout, _, err := executeCmd(rootCmd, "--db", db, "history", "--json", "--limit", "1")
		require.NoError(t, err)

		var got struct {
			Count    int                 `json:"count"`
			Sessions []map[string]string `json:"sessions"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, 1, got.Count)
		require.Len(t, got.Sessions, 1)
		assert.Equal(t, stopped.ID, got.Sessions[0]["id"])
		assert.Equal(t, "stopped", got.Sessions[0]["outcome"])
	})
}

func TestConfigCmd(t *testing.T) {
	home := withHome(t)

	stdout, _, err := executeCmd(rootCmd, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, home+"/.focusdial/config.toml")
	assert.Contains(t, stdout, "Idle timeout:    15s")
	assert.Regexp(t, `Position 5 +30m`, stdout)
	assert.Regexp(t, `Position 13 +1h`, stdout)
	assert.Contains(t, stdout, "Sound:           on")
	assert.NotContains(t, stdout, "Pulse range")
	assert.NotContains(t, stdout, "Reversed")
}

// TestFormatMinutes tests the formatMinutes helper function
func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"seconds", 36 * time.Second, "36s"},
		{"30 minutes", 30 * time.Minute, "30m"},
		{"60 minutes", 60 * time.Minute, "1h"},
		{"90 minutes", 90 * time.Minute, "1h30m"},
		{"120 minutes", 120 * time.Minute, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMinutes(tt.duration))
		})
	}
}

func TestGetOutcomeIcon(t *testing.T) {
	assert.Equal(t, "✅", getOutcomeIcon(domain.SessionOutcomeCompleted))
	assert.Equal(t, "⏹", getOutcomeIcon(domain.SessionOutcomeStopped))
	assert.Equal(t, "❓", getOutcomeIcon(domain.SessionOutcome("lost")))
}
