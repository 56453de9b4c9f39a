package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestHashCommand(t *testing.T) {
	cmd := HashCommand()

	require.NotNil(t, cmd)
	require.Equal(t, "hash", cmd.Name)
	require.NotEmpty(t, cmd.Usage)

	var hasCompose, hasSalt, hasOutputDir bool
	for _, flag := range cmd.Flags {
		switch f := flag.(type) {
		case *cli.StringFlag:
			if f.Name == "compose" {
				hasCompose = true
				assert.Equal(t, "docker-compose.yml", f.Value)
			}
			if f.Name == "salt" {
				hasSalt = true
			}
			if f.Name == "output-dir" {
				hasOutputDir = true
			}
		}
	}
	require.True(t, hasCompose, "Should have --compose flag")
	require.True(t, hasSalt, "Should have --salt flag")
	require.True(t, hasOutputDir, "Should have --output-dir flag")
}

func TestHashCommandGeneratesArtifacts(t *testing.T) {
	dir := t.TempDir()
	composePath := filepath.Join(dir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(composePath,
		[]byte("services:\n  app:\n    image: nginx\n"), 0644))

	root := &cli.Command{Commands: []*cli.Command{HashCommand()}}
	err := root.Run(context.Background(), []string{
		"compose-hash", "hash",
		"--compose", composePath,
		"--output-dir", dir,
	})
	require.NoError(t, err)

	hash, err := os.ReadFile(filepath.Join(dir, hashArtifact))
	require.NoError(t, err)
	assert.Equal(t,
		"2416dbb09d8d86adb51bdd4afcabe64c0b2ef944df090a0ccb15193991f56b49",
		string(hash))

	literal, err := os.ReadFile(filepath.Join(dir, literalArtifact))
	require.NoError(t, err)
	assert.Contains(t, string(literal), `"docker_compose_file":"services:\n  app:\n    image: nginx\n",`)

	canonical, err := os.ReadFile(filepath.Join(dir, canonicalArtifact))
	require.NoError(t, err)
	assert.Contains(t, string(canonical), `"allowed_envs":[],"default_gateway_domain":null,`)
	assert.NotEqual(t, string(literal), string(canonical))
}

func TestHashCommandSaltOverride(t *testing.T) {
	dir := t.TempDir()
	composePath := filepath.Join(dir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(composePath,
		[]byte("services:\n  app:\n    image: nginx\n"), 0644))

	root := &cli.Command{Commands: []*cli.Command{HashCommand()}}
	err := root.Run(context.Background(), []string{
		"compose-hash", "hash",
		"--compose", composePath,
		"--output-dir", dir,
		"--salt", "ffffffffffffffffffffffffffffffff",
	})
	require.NoError(t, err)

	hash, err := os.ReadFile(filepath.Join(dir, hashArtifact))
	require.NoError(t, err)
	assert.Equal(t,
		"c731f2aaf9224994350d9fdea487c2dd3d392c65752fcd2d8b279da445d3c7dd",
		string(hash))
}

func TestValidateSalt(t *testing.T) {
	assert.NoError(t, validateSalt("05fcefaecd984204bb6ccf16938eaad5"))
	assert.Error(t, validateSalt("short"))
	assert.Error(t, validateSalt("zzfcefaecd984204bb6ccf16938eaad5"))
}
