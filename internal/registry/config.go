package registry

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Alternatives []fileAlternative `yaml:"alternatives"`
}

type fileAlternative struct {
	ID     *int                `yaml:"id"`
	Label  string              `yaml:"label"`
	Groups map[string][]string `yaml:"groups"`
}

// LoadFile builds a registry from a YAML document on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alternatives file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from a YAML document of the form
//
//	alternatives:
//	  - id: 1
//	    label: Pretrial release
//	    groups:
//	      st_detainee: [wtp_freedom, lost_wages]
func Parse(data []byte) (*Registry, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse alternatives: %w", err)
	}
	if len(doc.Alternatives) == 0 {
		return nil, errors.New("parse alternatives: document defines no alternatives")
	}

	b := NewBuilder()
	for i, fa := range doc.Alternatives {
		if fa.ID == nil {
			return nil, fmt.Errorf("parse alternatives: entry %d has no id", i+1)
		}
		groups := make(Groups, len(fa.Groups))
		for key, names := range fa.Groups {
			kind, err := ParseRowGroupKind(key)
			if err != nil {
				return nil, fmt.Errorf("parse alternatives: alternative %d: %w", *fa.ID, err)
			}
			groups[kind] = names
		}
		b.Define(*fa.ID, fa.Label, groups)
	}
	return b.Build()
}
