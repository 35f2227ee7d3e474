package worker

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	NewLogger().Warn("queue ", "critical", " is paused")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "queue critical is paused")
}

func TestLogger_FatalExits(t *testing.T) {
	if os.Getenv("WORKER_LOGGER_FATAL") == "1" {
		NewLogger().Fatal("redis connection lost")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLogger_FatalExits")
	cmd.Env = append(os.Environ(), "WORKER_LOGGER_FATAL=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected non-zero exit, got %v", err)
	assert.False(t, exitErr.Success())
}
