// Package delaytable loads and validates the external per-hop delay table
// STA accumulates against.
package delaytable

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

var requiredKeys = []string{"glb", "sb_horiz", "sb_up", "sb_down", "pe", "mem"}

// Load reads a delay table from path, validates it carries every required
// integer key via JSON schema, and decodes it into a Table. A missing key
// is caught here rather than at STA's first lookup (spec's "Unreachable
// delay-table key" error class).
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("delaytable: read %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(tableSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("delaytable: schema validation: %w", err)
	}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			if verr.Type() == "required" {
				return nil, fmt.Errorf("%w: %s", ErrMissingKey, verr.Description())
			}
		}
		return nil, fmt.Errorf("delaytable: %s is not a valid delay table: %v", path, result.Errors())
	}

	var jt jsonTable
	if err := json.Unmarshal(raw, &jt); err != nil {
		return nil, fmt.Errorf("delaytable: decode %s: %w", path, err)
	}

	return &Table{
		GlobalBuf: *jt.Glb,
		SBHoriz:   *jt.SBHoriz,
		SBUp:      *jt.SBUp,
		SBDown:    *jt.SBDown,
		PE:        *jt.PE,
		Mem:       *jt.Mem,
	}, nil
}

// FromMap builds a Table directly from a key/value map, the path used when
// a caller already has decoded values rather than a file to load. Every key
// in requiredKeys must be present.
func FromMap(values map[string]int) (*Table, error) {
	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}
	return &Table{
		GlobalBuf: values["glb"],
		SBHoriz:   values["sb_horiz"],
		SBUp:      values["sb_up"],
		SBDown:    values["sb_down"],
		PE:        values["pe"],
		Mem:       values["mem"],
	}, nil
}
