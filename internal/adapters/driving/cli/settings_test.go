package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	output, err := execute(t, "settings")
	require.NoError(t, err)

	assert.Contains(t, output, "[Resample]")
	assert.Contains(t, output, "Iterations: 100")
	assert.Contains(t, output, "Seed: (random per run)")
	assert.Contains(t, output, "[Output]")
	assert.Contains(t, output, "Database: (disabled)")
	assert.Contains(t, output, "Config file: :memory:")
}

func TestSettingsCmd_SetAndShow(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	output, err := execute(t, "settings", "set", "resample.seed", "42")
	require.NoError(t, err)
	assert.Contains(t, output, "resample.seed updated")

	_, err = execute(t, "settings", "set", "output.csv", "false")
	require.NoError(t, err)

	output, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "Seed: 42")
	assert.Contains(t, output, "CSV tables: off")
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "settings", "set", "resample.workers", "zero")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "valid keys:")

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Reset(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "settings", "set", "resample.iterations", "7")
	require.NoError(t, err)

	output, err := execute(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, output, "Settings restored to defaults")

	output, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "Iterations: 100")
}

func TestSettingsCmd_Path(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	output, err := execute(t, "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, ":memory:\n", output)
}

func TestSettingsCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "settings", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
