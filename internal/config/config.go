// Package config loads QLang's optional per-project settings file,
// .qlang.yaml, so cmd/qlang's flags don't have to be repeated on every
// invocation. This has no equivalent in go-dws (which has no project
// config file at all); it's grounded purely on the domain stack's
// already-vendored github.com/goccy/go-yaml, used here for the one
// concern in this port that plausibly wants a YAML-configured default:
// which host-provided class names a script is allowed to reference.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Project is the shape of a .qlang.yaml file.
type Project struct {
	// TypeCheck sets the default for `qlang run`'s --type-check flag.
	TypeCheck bool `yaml:"typeCheck"`
	// KnownClasses pre-registers host-provided class names with the
	// validator, the same effect as repeating --known-class on `qlang
	// check` or `qlang run`.
	KnownClasses []string `yaml:"knownClasses"`
}

// Default returns qlang's built-in defaults, used when no config file
// is present or a field is left unset in one.
func Default() Project {
	return Project{TypeCheck: true}
}

// Load reads and parses path. A missing file is not an error: it
// returns Default() unchanged, since .qlang.yaml is optional.
func Load(path string) (Project, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, err
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, err
	}
	return p, nil
}
