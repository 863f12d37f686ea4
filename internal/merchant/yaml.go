package merchant

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dvloznov/cardsim/internal/domain"
)

type yamlEntry struct {
	IDs     []string `yaml:"ids"`
	Channel string   `yaml:"channel"`
	Country string   `yaml:"country"`
}

// LoadFile reads and validates a merchant catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("merchant: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog from YAML bytes. The file maps
// category names to {ids, channel, country}.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]yamlEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("merchant: unmarshal yaml: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("merchant: empty catalog")
	}

	entries := make(map[string]Entry, len(raw))
	for category, e := range raw {
		var channel domain.Channel
		switch e.Channel {
		case string(domain.ChannelPOS):
			channel = domain.ChannelPOS
		case string(domain.ChannelOnline):
			channel = domain.ChannelOnline
		default:
			return nil, fmt.Errorf("merchant: category %q: channel %q is not POS or Online", category, e.Channel)
		}
		if e.Country == "" {
			return nil, fmt.Errorf("merchant: category %q: missing country", category)
		}
		entries[category] = Entry{
			IDs:     append([]string(nil), e.IDs...),
			Channel: channel,
			Country: e.Country,
		}
	}
	return NewCatalog(entries), nil
}
