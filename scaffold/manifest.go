package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const manifestFileName = "package.json"

// Metadata is the guppy object injected into a scaffolded package.json.
type Metadata struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      ProjectType `json:"type"`
	Icon      string      `json:"icon"`
	Color     string      `json:"color"`
	CreatedAt string      `json:"createdAt"`
}

// Manifest is the patched package.json of a created project.
type Manifest struct {
	// Path is the manifest's location on disk. Empty in fixture mode.
	Path string
	// Raw is the full manifest as written, 2-space indented.
	Raw []byte
	// Guppy is the injected metadata object.
	Guppy Metadata
}

// Name returns the manifest's top-level "name" field.
func (m *Manifest) Name() string {
	return gjson.GetBytes(m.Raw, "name").String()
}

// Width 1 stops pretty from collapsing short objects onto one line; npm
// always writes package.json fully expanded.
var prettyOpts = &pretty.Options{Width: 1, Indent: "  ", SortKeys: false}

// patchManifest reads the package.json the scaffolding tool left at dir,
// appends the guppy object as its last key (existing keys and their order are
// preserved), and rewrites the file with 2-space indentation.
func patchManifest(dir string, meta Metadata) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("manifest %s is not valid JSON", path)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode guppy metadata: %w", err)
	}

	patched, err := sjson.SetRawBytes(raw, "guppy", metaJSON)
	if err != nil {
		return nil, fmt.Errorf("inject guppy metadata: %w", err)
	}
	patched = pretty.PrettyOptions(patched, prettyOpts)

	if err := os.WriteFile(path, patched, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return &Manifest{Path: path, Raw: patched, Guppy: meta}, nil
}
