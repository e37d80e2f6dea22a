// Package content holds the static directory listings served alongside the advisory.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agriempower/backend/internal/domain"
)

//go:embed directory.yaml
var directoryYAML []byte

// Directory is the static catalogue shown by the dashboard
type Directory struct {
	Schemes   []domain.Scheme          `yaml:"schemes"`
	Resources []domain.Resource        `yaml:"resources"`
	Regions   []domain.RegionOverview  `yaml:"regions"`
	Reports   []domain.CommunityReport `yaml:"reports"`
}

// Load parses the embedded catalogue
func Load() (*Directory, error) {
	return Parse(directoryYAML)
}

// Parse decodes a catalogue document
func Parse(data []byte) (*Directory, error) {
	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("content: failed to parse directory: %w", err)
	}
	for i, r := range d.Regions {
		if _, ok := domain.ParseRegion(string(r.Region)); !ok || r.Region == "" {
			return nil, fmt.Errorf("content: region %d has unknown name %q", i, r.Region)
		}
	}
	return &d, nil
}
