package verify

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff between the locally rebuilt
// manifest and the deployed one, for mismatch inspection.
func UnifiedDiff(local, deployed string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(local),
		B:        difflib.SplitLines(deployed),
		FromFile: "local app-compose",
		ToFile:   "deployed app-compose",
		Context:  3,
	}
	out, _ := difflib.GetUnifiedDiffString(diff)
	return out
}
