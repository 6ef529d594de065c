package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a serialisation format for network files.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates a network file.
func Load(path string) (*Network, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return n, nil
}

// tomlNetwork is the TOML document shape. The toml encoder cannot index
// maps keyed by a named string type, so graphs are keyed by plain strings.
type tomlNetwork struct {
	Graphs map[string]*ModeGraph `toml:"graphs"`
}

// Decode parses a network in the given format and validates it.
func Decode(r io.Reader, format Format) (*Network, error) {
	n := New()
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(n)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(n)
	case FormatTOML:
		var doc tomlNetwork
		if _, err = toml.NewDecoder(r).Decode(&doc); err == nil {
			for mode, g := range doc.Graphs {
				n.Graphs[TransportMode(mode)] = g
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if n.Graphs == nil {
		n.Graphs = make(map[TransportMode]*ModeGraph)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Encode writes the network in the given format.
func (n *Network) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(n)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		doc := tomlNetwork{Graphs: make(map[string]*ModeGraph, len(n.Graphs))}
		for mode, g := range n.Graphs {
			doc.Graphs[string(mode)] = g
		}
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveTo writes the network to path, picking the format from the extension.
func (n *Network) SaveTo(path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := n.Encode(&buf, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
