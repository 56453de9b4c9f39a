package appcompose

import (
	"fmt"

	"github.com/Account-Link/reproducible-builds-playground/canonical"
)

// literalTemplate reproduces the reference system's manifest layout byte
// for byte: field order, four-space indentation, and the absence of
// spaces after separators are all part of the hashed bytes. The three
// verbs receive the escaped compose file, the escaped pre-launch script,
// and the salt.
const literalTemplate = `{
    "allowed_envs":[],
    "default_gateway_domain":null,
    "docker_compose_file":"%s",
    "features":[
        "kms",
        "tproxy-net"
    ],
    "gateway_enabled":true,
    "kms_enabled":true,
    "local_key_provider_enabled":false,
    "manifest_version":2,
    "name":"simple-det-app-verification",
    "no_instance_id":false,
    "pre_launch_script":"%s",
    "public_logs":true,
    "public_sysinfo":true,
    "runner":"docker-compose",
    "salt":"%s",
    "tproxy_enabled":true
}`

// RenderLiteral serializes the manifest in the fixed template form whose
// digest is compared against deployed manifests. The two free-text
// fields are JSON-escaped with the same routine the canonical serializer
// uses, so the two paths cannot diverge on escaping.
func (m *Manifest) RenderLiteral() string {
	return fmt.Sprintf(literalTemplate,
		canonical.EscapeString(m.DockerComposeFile),
		canonical.EscapeString(m.PreLaunchScript),
		m.Salt)
}
