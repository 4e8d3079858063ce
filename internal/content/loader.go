package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"creator-quiz/internal/scoring"
)

// Format identifica el formato del archivo de contenido.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var ErrUnsupportedFormat = errors.New("unsupported content format")

// FormatFromPath deduce el formato por extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile lee el cuestionario, perfiles, reglas y textos y construye el catalogo inmutable.
func LoadFile(path string) (*scoring.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	cat, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodifica el contenido en el formato indicado.
func Parse(data []byte, format Format) (*scoring.Catalog, error) {
	spec, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return scoring.NewCatalog(spec)
}

// Decode devuelve el spec crudo sin validar. Campos desconocidos se ignoran
// para tolerar archivos de versiones mas nuevas.
func Decode(data []byte, format Format) (scoring.CatalogSpec, error) {
	var spec scoring.CatalogSpec
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return scoring.CatalogSpec{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &spec); err != nil {
			return scoring.CatalogSpec{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return scoring.CatalogSpec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return spec, nil
}
