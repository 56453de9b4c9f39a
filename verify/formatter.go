package verify

import (
	"fmt"
	"strings"
)

// Formatter formats verification results for display.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatResult renders the digest comparison as indented lines.
func (f *Formatter) FormatResult(result *Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Deployed salt: %s\n", result.DeployedSalt))
	sb.WriteString(fmt.Sprintf("Deployed hash: %s\n", result.DeployedHash))
	sb.WriteString(fmt.Sprintf("Local hash:    %s\n", result.LocalHash))
	return sb.String()
}

// FormatMismatch explains a failed comparison, including where the two
// artifacts were saved and the unified diff between them.
func (f *Formatter) FormatMismatch(result *Result, localPath, deployedPath string) string {
	var sb strings.Builder
	sb.WriteString("Saved files for inspection:\n")
	sb.WriteString(fmt.Sprintf("  - %s\n", localPath))
	sb.WriteString(fmt.Sprintf("  - %s\n", deployedPath))
	if result.Diff != "" {
		sb.WriteString("\n")
		sb.WriteString(result.Diff)
	}
	return sb.String()
}
