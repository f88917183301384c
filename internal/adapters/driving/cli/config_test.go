package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigWriter(t *testing.T, f func(string) error) {
	t.Helper()
	old := configWriter
	SetConfigWriter(f)
	t.Cleanup(func() { configWriter = old })
}

func TestConfigInit_DefaultPath(t *testing.T) {
	buf, _ := setupCLITest(t, &mockSyncOrchestrator{})
	var written string
	withConfigWriter(t, func(path string) error {
		written = path
		return nil
	})
	rootCmd.SetArgs([]string{"config", "init"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "reposcout.toml", written)
	assert.Contains(t, buf.String(), "Wrote reposcout.toml")
}

func TestConfigInit_CustomPath(t *testing.T) {
	_, _ = setupCLITest(t, &mockSyncOrchestrator{})
	var written string
	withConfigWriter(t, func(path string) error {
		written = path
		return nil
	})
	rootCmd.SetArgs([]string{"config", "init", "other.toml"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "other.toml", written)
}

func TestConfigInit_WriterError(t *testing.T) {
	_, _ = setupCLITest(t, &mockSyncOrchestrator{})
	withConfigWriter(t, func(string) error { return errors.New("file exists") })
	rootCmd.SetArgs([]string{"config", "init"})

	err := rootCmd.Execute()

	assert.EqualError(t, err, "failed to write config: file exists")
}

func TestConfigInit_NotConfigured(t *testing.T) {
	_, _ = setupCLITest(t, &mockSyncOrchestrator{})
	withConfigWriter(t, nil)
	rootCmd.SetArgs([]string{"config", "init"})

	assert.EqualError(t, rootCmd.Execute(), "config writer not configured")
}
