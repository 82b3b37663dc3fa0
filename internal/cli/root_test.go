package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: quick_solve
deadline: 5s
sequence: [blue, green, red]
steps:
  - start: true
  - wait: 3600ms
  - submit_sequence: true
  - wait: 1s
expect:
  outcome: solved
  solved: 1
`

const failingScenario = `
name: too_slow
deadline: 1s
sequence: [1, 1, 1]
steps:
  - start: true
  - wait: 2s
expect:
  outcome: solved
`

func writeScenario(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir()) // keep a developer .env out of the run
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "quantumbox", cmd.Use)
	for _, name := range []string{"play", "script"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
	require.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestPlayFlags(t *testing.T) {
	cmd := NewRootCommand()
	play, _, err := cmd.Find([]string{"play"})
	require.NoError(t, err)
	for _, name := range []string{"daily", "decay", "lang", "mute"} {
		assert.NotNil(t, play.Flags().Lookup(name), name)
	}
}

func TestScript_Text(t *testing.T) {
	out, err := execute(t, "script", writeScenario(t, "quick", passingScenario))
	require.NoError(t, err)
	assert.Contains(t, out, "scenario quick_solve\n")
	assert.Contains(t, out, "+3.6s phase phase=awaiting_input")
	assert.Contains(t, out, "result outcome=solved solved=1 expired=0 elapsed=3.6s")
}

func TestScript_JSON(t *testing.T) {
	out, err := execute(t, "script", "--format", "json",
		writeScenario(t, "quick", passingScenario),
		writeScenario(t, "slow", failingScenario))
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var got []struct {
		Name    string `json:"name"`
		Outcome string `json:"outcome"`
		Passed  bool   `json:"passed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "quick_solve", got[0].Name)
	assert.True(t, got[0].Passed)
	assert.Equal(t, "expired", got[1].Outcome)
	assert.False(t, got[1].Passed)
}

func TestScript_FailureExitCode(t *testing.T) {
	out, err := execute(t, "script", writeScenario(t, "slow", failingScenario))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 1 scenarios failed")
	assert.Contains(t, out, "FAIL outcome: want solved, got expired")
}

func TestScript_MissingFile(t *testing.T) {
	_, err := execute(t, "script", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScript_RequiresArgs(t *testing.T) {
	_, err := execute(t, "script")
	assert.Error(t, err)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "script", "--format", "xml", writeScenario(t, "quick", passingScenario))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestBadConfiguration(t *testing.T) {
	t.Setenv("QB_DECAY_MIN", "40s")
	_, err := execute(t, "script", writeScenario(t, "quick", passingScenario))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGameSettingsFromEnvironment(t *testing.T) {
	// Slower playback: the sequence is not over at 3.6s, so input is ignored.
	t.Setenv("QB_GAME_SEQUENCE_INTERVAL", "2s")
	out, err := execute(t, "script", writeScenario(t, "quick", passingScenario))
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.NotContains(t, out, "phase=awaiting_input")
}

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapExitError(ExitCommandError, "load", cause)
	assert.Equal(t, "load: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitFailure, GetExitCode(cause))
	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
}
