package rbac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"courtside/internal/domain"
)

// capabilityFile is the on-disk shape of a capability override file:
//
//	capabilities:
//	  manage-roster: admin
//	  view-matches: viewer
type capabilityFile struct {
	Capabilities map[string]string `yaml:"capabilities"`
}

// LoadCapabilityFile applies capability→minimum-role overrides from a YAML
// file to the gate. Unknown capability names and unknown roles are rejected
// so a typo cannot silently relax or widen access.
func LoadCapabilityFile(g *Gate, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read capability file: %w", err)
	}

	var f capabilityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse capability file: %w", err)
	}

	for name, roleName := range f.Capabilities {
		c := Capability(name)
		if _, ok := defaultCapabilities[c]; !ok {
			return fmt.Errorf("unknown capability %q in %s", name, path)
		}
		role := domain.Role(roleName)
		if !role.Known() {
			return fmt.Errorf("unknown role %q for capability %q in %s", roleName, name, path)
		}
		g.Override(c, role)
	}
	return nil
}
