package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"path"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Codec encodes the settings map to and from file bytes.
type Codec interface {
	// Name identifies the format, e.g. "yaml".
	Name() string
	Marshal(values map[string]any) ([]byte, error)
	Unmarshal(data []byte) (map[string]any, error)
}

// YAML encodes settings with gopkg.in/yaml.v3.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAML) Unmarshal(data []byte) (map[string]any, error) {
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// TOML encodes settings with pelletier/go-toml/v2.
type TOML struct{}

func (TOML) Name() string { return "toml" }

func (TOML) Marshal(values map[string]any) ([]byte, error) {
	return toml.Marshal(values)
}

func (TOML) Unmarshal(data []byte) (map[string]any, error) {
	values := make(map[string]any)
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// JSON encodes settings as indented JSON.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(values map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSON) Unmarshal(data []byte) (map[string]any, error) {
	values := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// CodecFor returns the codec matching the filename's extension.
func CodecFor(filename string) (Codec, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML{}, nil
	case ".toml":
		return TOML{}, nil
	case ".json":
		return JSON{}, nil
	default:
		return nil, unsupportedFormat(filename)
	}
}

// convert turns a decoded value into T. Values that already have the
// right type pass through; others take a JSON round trip so numbers decoded
// as int64 or float64 still land in int, float32 and friends.
// A nil value is only accepted for types that can hold nil.
func convert[T any](raw any) (T, error) {
	if v, ok := raw.(T); ok {
		return v, nil
	}
	var out T
	if raw == nil {
		if nillable(reflect.TypeFor[T]()) {
			return out, nil
		}
		return out, errNullValue
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

var errNullValue = errors.New("null value")

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}
