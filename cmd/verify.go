package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Account-Link/reproducible-builds-playground/verify"
)

// localRenderArtifact is where the locally rebuilt manifest is saved for
// diffing against the deployed one.
const localRenderArtifact = "our-app-compose-with-deployed-salt.json"

// VerifyCommand creates the verify command
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a local docker-compose file reproduces the hash of a deployed app-compose manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "compose",
				Usage:    "Path to the local docker-compose file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "deployed",
				Usage:    "Path to the deployed app-compose manifest (JSON)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory the locally rebuilt manifest is written to",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runVerifyCommand,
	}
}

func runVerifyCommand(ctx context.Context, cmd *cli.Command) error {
	composePath := cmd.String("compose")
	deployedPath := cmd.String("deployed")
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

	doc, raw, err := verify.LoadDeployed(deployedPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debug("deployed manifest loaded",
		zap.String("path", deployedPath),
		zap.Int("bytes", len(raw)))

	service := verify.NewService()
	result, err := service.Verify(&verify.Request{
		ComposeText:      composeText,
		DeployedDocument: doc,
		DeployedBytes:    raw,
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	localPath := filepath.Join(outputDir, localRenderArtifact)
	if err := os.WriteFile(localPath, []byte(result.LocalRendered), 0644); err != nil {
		return fmt.Errorf("failed to save local manifest: %w", err)
	}

	formatter := verify.NewFormatter()
	fmt.Print(formatter.FormatResult(result))

	if result.Outcome == verify.Matched {
		color.Green("HASH MATCH - local compose generates the same hash as deployed")
		return nil
	}

	color.Red("HASH MISMATCH - local compose does not reproduce the deployed hash")
	fmt.Print(formatter.FormatMismatch(result, localPath, deployedPath))
	return cli.Exit("", 1)
}
