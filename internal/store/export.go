package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// Snapshot formats accepted by Export.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the export formats in display order.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

// ErrUnknownFormat is returned by Export for an unsupported format.
var ErrUnknownFormat = fmt.Errorf("%w: format must be json, yaml or toml", types.ErrValidation)

// Export writes a snapshot of state to w. The JSON form is the same document
// the JSON backend stores.
func Export(w io.Writer, state *types.State, format string) error {
	if state == nil {
		return types.ErrNilState
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(state)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(state); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("export %q: %w", format, ErrUnknownFormat)
}
