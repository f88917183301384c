package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCmd(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "user", url: "https://github.com/acme", want: "user: acme"},
		{name: "repository", url: "https://github.com/acme/Widget", want: "repository: acme/Widget"},
		{name: "deep path", url: "https://github.com/acme/widget/tree/main", want: "invalid: https://github.com/acme/widget/tree/main"},
		{name: "no scheme", url: "github.com/acme", want: "invalid: github.com/acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, _ := setupCLITest(t, &mockSyncOrchestrator{})
			rootCmd.SetArgs([]string{"classify", tt.url})

			err := rootCmd.Execute()

			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestClassifyCmd_RequiresOneArg(t *testing.T) {
	_, _ = setupCLITest(t, &mockSyncOrchestrator{})
	rootCmd.SetArgs([]string{"classify"})

	assert.Error(t, rootCmd.Execute())
}
