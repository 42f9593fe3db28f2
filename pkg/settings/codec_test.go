package settings

import (
	"errors"
	"testing"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

func TestCodecFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"game.yaml", "yaml"},
		{"game.YML", "yaml"},
		{"settings/game.toml", "toml"},
		{"game.json", "json"},
	}

	for _, tt := range tests {
		c, err := CodecFor(tt.filename)
		if err != nil {
			t.Errorf("CodecFor(%q) error: %v", tt.filename, err)
			continue
		}
		if c.Name() != tt.want {
			t.Errorf("CodecFor(%q) = %s, want %s", tt.filename, c.Name(), tt.want)
		}
	}

	_, err := CodecFor("game.ini")
	var ge *gkerrors.GameError
	if !errors.As(err, &ge) || ge.Code != "E024" {
		t.Errorf("CodecFor(game.ini) = %v, want E024", err)
	}
}

func TestCodecsDecodeEmpty(t *testing.T) {
	for _, c := range []Codec{YAML{}, TOML{}, JSON{}} {
		values, err := c.Unmarshal(nil)
		if err != nil {
			t.Errorf("%s: %v", c.Name(), err)
			continue
		}
		if len(values) != 0 {
			t.Errorf("%s: expected no values, got %v", c.Name(), values)
		}
	}
}

func TestConvert(t *testing.T) {
	if v, err := convert[int](int64(3)); err != nil || v != 3 {
		t.Errorf("int64 -> int = %v, %v", v, err)
	}
	if v, err := convert[float32](0.5); err != nil || v != 0.5 {
		t.Errorf("float64 -> float32 = %v, %v", v, err)
	}
	if v, err := convert[float64](2); err != nil || v != 2 {
		t.Errorf("int -> float64 = %v, %v", v, err)
	}
	if _, err := convert[int](nil); !errors.Is(err, errNullValue) {
		t.Errorf("nil into int: expected errNullValue, got %v", err)
	}
	if _, err := convert[string](nil); !errors.Is(err, errNullValue) {
		t.Errorf("nil into string: expected errNullValue, got %v", err)
	}
	if v, err := convert[[]string](nil); err != nil || v != nil {
		t.Errorf("nil into slice = %v, %v", v, err)
	}
	if _, err := convert[bool]("yes"); err == nil {
		t.Error("string -> bool should fail")
	}

	type point struct {
		X, Y int
	}
	v, err := convert[point](map[string]any{"X": 1234, "Y": 6789})
	if err != nil || v != (point{1234, 6789}) {
		t.Errorf("map -> struct = %v, %v", v, err)
	}
}
