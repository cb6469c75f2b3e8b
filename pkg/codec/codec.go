package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// Format is a serialization of a reaction record
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatProto Format = "proto"
)

// ParseFormat accepts a format name or a common alias
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "pbjson":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "proto", "pb", "binpb", "protobuf":
		return FormatProto, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json, yaml or proto)", s)
	}
}

// FormatFromPath guesses the format from a file extension, returning false if unknown
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// DetectFormat sniffs content: a leading '{' is JSON, valid UTF-8 text is YAML and
// anything else is treated as binary protobuf.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	if isText(trimmed) {
		return FormatYAML
	}
	return FormatProto
}

func isText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, r := range string(data) {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
	}
	return true
}

// Decode converts data in the given format into a record. Syntax errors are returned as
// errors; recoverable content problems are returned as Issues alongside the record.
func Decode(data []byte, format Format) (*reaction.Reaction, Issues, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatProto:
		return DecodeProto(data)
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
}

// DecodeJSON decodes protobuf-style JSON with original field names
func DecodeJSON(data []byte) (*reaction.Reaction, Issues, error) {
	var w Reaction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, nil, fmt.Errorf("failed to decode JSON record: %w", err)
	}
	return FromWire(&w)
}

// DecodeYAML decodes the YAML rendering of the JSON form
func DecodeYAML(data []byte) (*reaction.Reaction, Issues, error) {
	var w Reaction
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, nil, fmt.Errorf("failed to decode YAML record: %w", err)
	}
	return FromWire(&w)
}

// FromWire converts a decoded wire message into a record
func FromWire(w *Reaction) (*reaction.Reaction, Issues, error) {
	if w == nil {
		return nil, nil, fmt.Errorf("record is empty")
	}
	d := &decoder{}
	rec := d.reaction(w)
	return rec, d.issues, nil
}

// EncodeJSON renders a record as indented protobuf-style JSON
func EncodeJSON(r *reaction.Reaction) ([]byte, error) {
	data, err := json.MarshalIndent(ToWire(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

// EncodeYAML renders a record as YAML
func EncodeYAML(r *reaction.Reaction) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToWire(r)); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode renders a record in the given format
func Encode(r *reaction.Reaction, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(r)
	case FormatYAML:
		return EncodeYAML(r)
	case FormatProto:
		return EncodeProto(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
