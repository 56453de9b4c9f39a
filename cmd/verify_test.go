package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Account-Link/reproducible-builds-playground/appcompose"
)

func TestVerifyCommand(t *testing.T) {
	cmd := VerifyCommand()

	require.NotNil(t, cmd)
	require.Equal(t, "verify", cmd.Name)
	require.NotEmpty(t, cmd.Usage)

	var hasCompose, hasDeployed bool
	for _, flag := range cmd.Flags {
		switch f := flag.(type) {
		case *cli.StringFlag:
			if f.Name == "compose" {
				hasCompose = true
				assert.True(t, f.Required)
			}
			if f.Name == "deployed" {
				hasDeployed = true
				assert.True(t, f.Required)
			}
		}
	}
	require.True(t, hasCompose, "Should have --compose flag")
	require.True(t, hasDeployed, "Should have --deployed flag")
}

func TestVerifyCommandMatch(t *testing.T) {
	dir := t.TempDir()
	composeText := "services:\n  app:\n    image: nginx\n"

	composePath := filepath.Join(dir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(composePath, []byte(composeText), 0644))

	// Simulate a deployed manifest published with a non-default salt.
	deployed := appcompose.New(composeText,
		appcompose.WithSalt("ffffffffffffffffffffffffffffffff")).RenderLiteral()
	deployedPath := filepath.Join(dir, "app-compose.json")
	require.NoError(t, os.WriteFile(deployedPath, []byte(deployed), 0644))

	root := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
	err := root.Run(context.Background(), []string{
		"compose-hash", "verify",
		"--compose", composePath,
		"--deployed", deployedPath,
		"--output-dir", dir,
	})
	require.NoError(t, err)

	// The local rebuild is saved for inspection and must match the
	// deployed bytes exactly on a successful verification.
	local, err := os.ReadFile(filepath.Join(dir, localRenderArtifact))
	require.NoError(t, err)
	assert.Equal(t, deployed, string(local))
}
