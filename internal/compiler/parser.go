package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/animflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an authored graph document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFormat)
}

// Parser converts raw document bytes into an authored graph.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data as format. The result is not validated.
func (p *Parser) Parse(data []byte, format Format) (*domain.Graph, error) {
	var g domain.Graph
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&g)
	case FormatYAML:
		err = yaml.Unmarshal(data, &g)
	case FormatTOML:
		_, err = toml.Decode(string(data), &g)
	default:
		return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	if len(g.States) == 0 {
		return nil, fmt.Errorf("graph %q has no states", g.Name)
	}
	return &g, nil
}
