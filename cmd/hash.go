package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Account-Link/reproducible-builds-playground/appcompose"
)

// Fixed artifact names shared with the reference tooling.
const (
	literalArtifact   = "app-compose-generated.json"
	canonicalArtifact = "app-compose-deterministic.json"
	hashArtifact      = "compose-hash.txt"
)

// HashCommand creates the hash command
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Generate the app-compose manifest and its deterministic hash from a docker-compose file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "compose",
				Usage: "Path to the docker-compose file",
				Value: "docker-compose.yml",
			},
			&cli.StringFlag{
				Name:  "salt",
				Usage: "Override the manifest salt (32 hex characters)",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory the generated artifacts are written to",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runHashCommand,
	}
}

func runHashCommand(ctx context.Context, cmd *cli.Command) error {
	composePath := cmd.String("compose")
	salt := cmd.String("salt")
	outputDir := cmd.String("output-dir")

	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	composeText, err := readComposeFile(composePath, logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var opts []appcompose.Option
	if salt != "" {
		if err := validateSalt(salt); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		opts = append(opts, appcompose.WithSalt(salt))
	}

	manifest := appcompose.New(composeText, opts...)

	fmt.Println("=== Generating App Compose Hash ===")
	fmt.Printf("Input: %s\n", composePath)

	literal := manifest.RenderLiteral()
	canonicalJSON, err := manifest.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("failed to canonicalize manifest: %w", err)
	}
	hash := appcompose.ComputeHash([]byte(literal))
	logger.Debug("manifest rendered",
		zap.Int("literal_bytes", len(literal)),
		zap.Int("canonical_bytes", len(canonicalJSON)),
		zap.String("hash", hash))

	artifacts := []struct {
		name    string
		content string
	}{
		{literalArtifact, literal},
		{canonicalArtifact, canonicalJSON},
		{hashArtifact, hash},
	}
	for _, a := range artifacts {
		path := filepath.Join(outputDir, a.name)
		if err := os.WriteFile(path, []byte(a.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.name, err)
		}
	}

	fmt.Printf("App Compose Hash: %s\n", hash)
	fmt.Printf("Hash (short): %s\n", hash[:16])
	fmt.Println("\n=== Files Generated ===")
	fmt.Printf("- %s: Human-readable app compose configuration\n", literalArtifact)
	fmt.Printf("- %s: Deterministic JSON used for reference\n", canonicalArtifact)
	fmt.Printf("- %s: The SHA256 hash\n", hashArtifact)

	return nil
}

// readComposeFile loads the compose file as opaque text. The content is
// hashed exactly as read; the YAML check only warns, since a compose
// file that fails to parse still hashes deterministically.
func readComposeFile(path string, logger *zap.Logger) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read compose file: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		logger.Warn("compose file is not valid YAML, hashing it anyway",
			zap.String("path", path),
			zap.Error(err))
	}
	return string(b), nil
}

func validateSalt(salt string) error {
	if len(salt) != 32 {
		return fmt.Errorf("salt must be 32 hex characters, got %d", len(salt))
	}
	if _, err := hex.DecodeString(salt); err != nil {
		return fmt.Errorf("salt is not valid hex: %w", err)
	}
	return nil
}
