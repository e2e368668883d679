package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest builds a fresh session for each test, mirroring
// c-robotcli/robot_cli_test.go's setupTest reset of the package-level
// warehouse/robot_map before every command test.
func setupTest() {
	session = newDefaultSession(7)
}

// captureOutput redirects stdout for the duration of a command, following
// c-robotcli/robot_cli_test.go's os.Pipe-based capture.
func captureOutput() func() string {
	var buf bytes.Buffer
	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w

	return func() string {
		w.Close()
		os.Stdout = stdout
		io.Copy(&buf, r)
		r.Close()
		return buf.String()
	}
}

func TestViewCmd_PrintsRobotMarker(t *testing.T) {
	setupTest()
	restore := captureOutput()
	rootCmd.SetArgs([]string{"view"})
	require.NoError(t, rootCmd.Execute())
	out := restore()
	assert.Contains(t, out, " R ")
}

func TestStatusCmd_PrintsMostLikelyAndHeld(t *testing.T) {
	setupTest()
	restore := captureOutput()
	rootCmd.SetArgs([]string{"status"})
	require.NoError(t, rootCmd.Execute())
	out := restore()
	assert.Contains(t, out, "most_likely=")
	assert.Contains(t, out, `held=""`)
}

func TestGotoCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTest()
	rootCmd.SetArgs([]string{"goto"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestGotoCmd_ReportsSucceededOrFailed(t *testing.T) {
	setupTest()
	restore := captureOutput()
	rootCmd.SetArgs([]string{"goto", "living_room"})
	require.NoError(t, rootCmd.Execute())
	out := restore()
	assert.True(t, strings.Contains(out, "Goal succeeded.") || strings.Contains(out, "Goal failed."))
}
