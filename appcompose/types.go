// Package appcompose builds and serializes dstack app-compose manifests.
//
// A manifest wraps a docker-compose file and a pre-launch script in a
// fixed-schema document. Its serialized bytes are hashed and compared
// against the hash published by a deployment running inside a trusted
// execution environment, so every byte of the serialized form is part of
// the contract. Two serializations exist:
//
//   - the literal form (RenderLiteral): fixed field order and
//     indentation matching the external reference system; this is what
//     gets hashed in production
//   - the canonical form (CanonicalJSON): key-sorted compact JSON kept
//     as a reference artifact for debugging
package appcompose

import (
	"github.com/Account-Link/reproducible-builds-playground/canonical"
)

// Schema constants pinned by the reference deployment format. Changing
// any of them changes every computed hash.
const (
	// DefaultSalt is the salt baked into locally generated manifests.
	DefaultSalt = "05fcefaecd984204bb6ccf16938eaad5"

	// DeploymentName identifies the deployment in the manifest.
	DeploymentName = "simple-det-app-verification"

	// ManifestVersion is the app-compose schema version.
	ManifestVersion = 2

	// Runner names the workload runner expected by the TEE host.
	Runner = "docker-compose"
)

// Manifest is an app-compose document. Only the three fields below vary
// between manifests; everything else is fixed by the schema.
type Manifest struct {
	DockerComposeFile string
	PreLaunchScript   string
	Salt              string
}

// Option adjusts manifest construction.
type Option func(*Manifest)

// WithSalt overrides the default salt, used when rebuilding a manifest
// against a deployed document whose salt differs.
func WithSalt(salt string) Option {
	return func(m *Manifest) { m.Salt = salt }
}

// WithPreLaunchScript overrides the default boot script.
func WithPreLaunchScript(script string) Option {
	return func(m *Manifest) { m.PreLaunchScript = script }
}

// New constructs a manifest around the given docker-compose file
// content. The content is treated as an opaque string; it is never
// parsed or normalized here.
func New(composeText string, opts ...Option) *Manifest {
	m := &Manifest{
		DockerComposeFile: composeText,
		PreLaunchScript:   DefaultPreLaunchScript,
		Salt:              DefaultSalt,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Value returns the manifest as a generic JSON value covering the full
// fixed schema, suitable for canonicalization.
func (m *Manifest) Value() map[string]any {
	return map[string]any{
		"allowed_envs":               []any{},
		"default_gateway_domain":     nil,
		"docker_compose_file":        m.DockerComposeFile,
		"features":                   []any{"kms", "tproxy-net"},
		"gateway_enabled":            true,
		"kms_enabled":                true,
		"local_key_provider_enabled": false,
		"manifest_version":           ManifestVersion,
		"name":                       DeploymentName,
		"no_instance_id":             false,
		"pre_launch_script":          m.PreLaunchScript,
		"public_logs":                true,
		"public_sysinfo":             true,
		"runner":                     Runner,
		"salt":                       m.Salt,
		"tproxy_enabled":             true,
	}
}

// CanonicalJSON renders the manifest in key-sorted compact form. This
// form is a debugging artifact; production digests are computed over
// RenderLiteral output.
func (m *Manifest) CanonicalJSON() (string, error) {
	return canonical.Canonicalize(m.Value())
}
