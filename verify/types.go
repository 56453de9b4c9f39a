// Package verify compares a locally rebuilt app-compose manifest against
// a manifest deployed to a trusted execution environment.
//
// Verification is purely local: the deployed manifest document supplies
// the salt, the caller supplies the compose file and optional boot
// script text, and the service rebuilds the manifest, renders it in the
// reference literal form, and compares digests. A mismatch is a normal
// terminal outcome, not an error; both rendered documents are retained
// on the result so callers can diff them.
package verify

// Outcome is the terminal state of a verification.
type Outcome int

const (
	// Pending means verification has not completed.
	Pending Outcome = iota
	// Matched means the local and deployed digests are byte-equal.
	Matched
	// Mismatched means the digests differ.
	Mismatched
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "match"
	case Mismatched:
		return "mismatch"
	default:
		return "pending"
	}
}

// Request carries the inputs for one verification.
type Request struct {
	// ComposeText is the local docker-compose file content.
	ComposeText string
	// PreLaunchScript optionally overrides the default boot script.
	PreLaunchScript string
	// DeployedDocument is the parsed deployed manifest; its salt field
	// is injected into the local rebuild.
	DeployedDocument map[string]any
	// DeployedBytes are the exact bytes the published digest was
	// computed over.
	DeployedBytes []byte
}

// Result captures the outcome plus both compared artifacts for
// diagnostic output.
type Result struct {
	Outcome       Outcome
	DeployedSalt  string
	DeployedHash  string
	LocalHash     string
	LocalRendered string
	DeployedRaw   []byte
	// Diff is a unified diff of the two documents, populated only on
	// mismatch.
	Diff string
}
