package verify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Account-Link/reproducible-builds-playground/appcompose"
)

// ErrMalformedReference reports a deployed manifest that cannot be used
// as a verification reference.
var ErrMalformedReference = errors.New("deployed manifest is not a valid app-compose document")

// Service performs local hash verification against deployed manifests.
type Service struct{}

// NewService creates a new verification service.
func NewService() *Service {
	return &Service{}
}

// Verify rebuilds the manifest from the request's compose text using the
// salt extracted from the deployed document, then compares its digest to
// the digest of the deployed bytes. The returned result is Matched iff
// the two digests are byte-equal; fuzzy or partial matching does not
// exist. An error is returned only for malformed references, never for a
// mismatch.
func (s *Service) Verify(req *Request) (*Result, error) {
	salt, err := extractSalt(req.DeployedDocument)
	if err != nil {
		return nil, err
	}

	opts := []appcompose.Option{appcompose.WithSalt(salt)}
	if req.PreLaunchScript != "" {
		opts = append(opts, appcompose.WithPreLaunchScript(req.PreLaunchScript))
	}
	local := appcompose.New(req.ComposeText, opts...)
	rendered := local.RenderLiteral()

	result := &Result{
		DeployedSalt:  salt,
		DeployedHash:  appcompose.ComputeHash(req.DeployedBytes),
		LocalHash:     appcompose.ComputeHash([]byte(rendered)),
		LocalRendered: rendered,
		DeployedRaw:   req.DeployedBytes,
	}

	if result.LocalHash == result.DeployedHash {
		result.Outcome = Matched
	} else {
		result.Outcome = Mismatched
		result.Diff = UnifiedDiff(rendered, string(req.DeployedBytes))
	}
	return result, nil
}

// LoadDeployed reads a deployed manifest file and returns both the
// parsed document and the raw bytes the published digest was computed
// over. Numbers are kept as json.Number so the document re-serializes
// without reformatting.
func LoadDeployed(path string) (map[string]any, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read deployed manifest: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedReference, err)
	}
	return doc, raw, nil
}

func extractSalt(doc map[string]any) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: missing document", ErrMalformedReference)
	}
	v, ok := doc["salt"]
	if !ok {
		return "", fmt.Errorf("%w: missing salt field", ErrMalformedReference)
	}
	salt, ok := v.(string)
	if !ok || salt == "" {
		return "", fmt.Errorf("%w: salt is not a non-empty string", ErrMalformedReference)
	}
	return salt, nil
}
