package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig("fixtures/example.yaml")
	require.NoError(t, err)
	require.Equal(t, 4194304, cfg.Execution["currentBatchBufferSize"])
	require.Equal(t, 1048576, cfg.Execution["otherBatchesBufferSize"])
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig("fixtures/does-not-exist.yaml")
	require.Error(t, err)
}

func TestBufferBudgets_ReadsFromFile(t *testing.T) {
	cfg, err := ReadConfig("fixtures/example.yaml")
	require.NoError(t, err)

	current, other, err := BufferBudgets(cfg)
	require.NoError(t, err)
	require.Equal(t, 4194304, current)
	require.Equal(t, 1048576, other)
}

func TestBufferBudgets_DefaultsWhenAbsent(t *testing.T) {
	current, other, err := BufferBudgets(&Config{})
	require.NoError(t, err)
	require.Equal(t, DefaultCurrentBatchBufferSize, current)
	require.Equal(t, DefaultOtherBatchesBufferSize, other)
}

func TestBufferBudgets_NilConfig(t *testing.T) {
	current, other, err := BufferBudgets(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultCurrentBatchBufferSize, current)
	require.Equal(t, DefaultOtherBatchesBufferSize, other)
}
