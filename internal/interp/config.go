package interp

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a user interpreter file:
//
//	interpreters:
//	  mylang:
//	    bin: mylang-repl
//	    prompt: '^>>> '
//	    env: {NO_COLOR: "1"}
//	    preprocess: 'text.replace(/\r/g, "")'
//	aliases:
//	  ml: mylang
type fileConfig struct {
	Interpreters map[string]fileInterp `yaml:"interpreters"`
	Aliases      map[string]string     `yaml:"aliases"`
}

type fileInterp struct {
	Bin        string            `yaml:"bin"`
	Args       []string          `yaml:"args"`
	Prompt     string            `yaml:"prompt"`
	Env        map[string]string `yaml:"env"`
	Preprocess string            `yaml:"preprocess"`
}

// LoadFile reads a user interpreter file and layers it over base. User
// entries shadow builtin ones of the same name.
func LoadFile(path string, base *Registry) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read interpreter config: %w", err)
	}
	reg, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse layers YAML interpreter definitions over base.
func Parse(data []byte, base *Registry) (*Registry, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse interpreter config: %w", err)
	}

	descriptors := make([]*Descriptor, 0, len(cfg.Interpreters))
	for name, fi := range cfg.Interpreters {
		d := &Descriptor{
			Name: name,
			Bin:  fi.Bin,
			Args: fi.Args,
			Env:  fi.Env,
		}
		if fi.Prompt != "" {
			prompt, err := regexp.Compile(fi.Prompt)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: prompt: %v", ErrInvalidDescriptor, name, err)
			}
			d.Prompt = prompt
		}
		if fi.Preprocess != "" {
			pre, err := ScriptPreprocess(fi.Preprocess)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			d.Preprocess = pre
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	return base.merge(descriptors, cfg.Aliases), nil
}
