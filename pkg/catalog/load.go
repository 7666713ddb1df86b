package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/treeforge/merchant/pkg/errors"
)

// Format is the serialization format of a catalogue file. The format is
// chosen by file extension and preserved on save.
type Format string

const (
	// FormatTOML is the primary, hand-edited catalogue format.
	FormatTOML Format = "toml"
	// FormatJSON suits generated catalogues.
	FormatJSON Format = "json"
	// FormatYAML is accepted for projects that keep everything in YAML.
	FormatYAML Format = "yaml"
)

// DefaultFile is the catalogue filename used when none is given.
const DefaultFile = "products.toml"

// FormatForPath determines the catalogue format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported catalogue extension %q (use .toml, .json, or .yaml)",
			errors.ErrInvalidInput, filepath.Ext(path))
	}
}

// Load reads, parses, and validates a catalogue file. A catalogue that
// fails validation never reaches the caller.
func Load(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	cat, err := Parse(data, format)
	if err != nil {
		return nil, errors.WrapParse(string(format), path, err)
	}
	return cat, nil
}

// Parse decodes a catalogue from raw bytes in the given format and
// validates it.
func Parse(data []byte, format Format) (*Catalog, error) {
	var cat Catalog
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cat)
	case FormatJSON:
		err = json.Unmarshal(data, &cat)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cat)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", errors.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Marshal encodes a catalogue in the given format.
func Marshal(c *Catalog, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatJSON:
		return json.MarshalIndent(c, "", "  ")
	case FormatYAML:
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", errors.ErrInvalidInput, format)
	}
}

// Save writes the catalogue back to its file, keeping the format implied by
// the extension. The write is atomic: remote ids and fingerprints assigned
// during a partially failed sync must never be lost to a torn write.
func Save(path string, c *Catalog) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(c, format)
	if err != nil {
		return errors.WrapParse(string(format), path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
