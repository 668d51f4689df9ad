package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// LoadProfile returns the institution profile. Fields left empty in the
// YAML file keep their built-in defaults; an empty path yields the defaults.
func LoadProfile(path string) (domain.Profile, error) {
	profile := domain.DefaultProfile()
	if path == "" {
		return profile, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read institution profile: %w", err)
	}
	return ParseProfile(raw)
}

// ParseProfile overlays a YAML document on the default profile.
func ParseProfile(raw []byte) (domain.Profile, error) {
	profile := domain.DefaultProfile()

	var override domain.Profile
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return profile, fmt.Errorf("parse institution profile: %w", err)
	}

	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&profile.AppName, override.AppName)
	merge(&profile.ShortName, override.ShortName)
	merge(&profile.Name, override.Name)
	merge(&profile.Region, override.Region)
	merge(&profile.Responsible, override.Responsible)
	merge(&profile.ResponsibleRole, override.ResponsibleRole)
	if len(override.Departments) > 0 {
		profile.Departments = override.Departments
	}
	return profile, nil
}
