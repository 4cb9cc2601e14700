package rules

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// ruleDatabaseYAML is the YAML rendition of the rule database, used by modders
// and test fixtures that do not want to hand-edit the XML export
type ruleDatabaseYAML struct {
	ProductionTypes []productionTypeYAML `yaml:"production_types"`
}

type productionTypeYAML struct {
	ID                string `yaml:"id"`
	Description       string `yaml:"description"`
	DefaultBucket     string `yaml:"default_bucket"`
	RoundingDirection string `yaml:"rounding_direction"`
}

// LoadYAML reads a YAML rule database file and builds the registry
func LoadYAML(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule database %s: %w", path, err)
	}
	defer f.Close()

	reg, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule database %s: %w", path, err)
	}
	return reg, nil
}

// ParseYAML decodes a YAML rule database. Defaults match ParseXML.
func ParseYAML(r io.Reader) (*Registry, error) {
	var doc ruleDatabaseYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse rule database: %w", err)
	}

	policies := make([]domain.ResourceTypePolicy, 0, len(doc.ProductionTypes))
	for _, pt := range doc.ProductionTypes {
		policy, err := productionTypeXML(pt).toPolicy()
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}

	return NewRegistry(policies...)
}

// Load picks the rule database format from the file extension.
// Anything other than .yaml or .yml is read as XML.
func Load(path string) (*Registry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return LoadXML(path)
	}
}
