// Package config holds the small set of rendering knobs the engine and its
// CLI front end recognize. Like the teacher's funcs.json/blocks.json/
// chunks.json sidecars (cmd/x/helper.go, cmd/x/lifter.go), a config file is
// optional: its absence just means the defaults apply.
package config

import (
	"github.com/mewkiz/pkg/jsonutil"
	"github.com/mewkiz/pkg/osutil"
	"github.com/pkg/errors"
)

// Defaults for every recognized knob.
const (
	DefaultBytesChunkWidth    = 32
	DefaultBytesMaxLines      = 100
	DefaultAddressColumnWidth = 10
)

// Config holds the rendering knobs. HexTruncateWidth has no static default:
// it is derived from a decoder's MaxInstructionWidth (see Derive).
type Config struct {
	BytesChunkWidth    int `json:"bytes_chunk_width"`
	BytesMaxLines      int `json:"bytes_max_lines"`
	AddressColumnWidth int `json:"address_column_width"`
	HexTruncateWidth   int `json:"-"`
}

// Default returns a Config populated with every documented default.
func Default() Config {
	return Config{
		BytesChunkWidth:    DefaultBytesChunkWidth,
		BytesMaxLines:      DefaultBytesMaxLines,
		AddressColumnWidth: DefaultAddressColumnWidth,
	}
}

// Derive fills in HexTruncateWidth from a decoder's maximum instruction
// width, per the formula max_width*3 + 1.
func (c Config) Derive(maxInstructionWidth int) Config {
	c.HexTruncateWidth = maxInstructionWidth*3 + 1
	return c
}

// Load reads an optional JSON sidecar at path, overlaying it onto Default().
// A missing file is not an error, matching the teacher's parseJSON idiom.
func Load(path string) (Config, error) {
	cfg := Default()
	if !osutil.Exists(path) {
		return cfg, nil
	}
	if err := jsonutil.ParseFile(path, &cfg); err != nil {
		return Config{}, errors.WithStack(err)
	}
	return cfg, nil
}
