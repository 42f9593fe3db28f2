package settings

import (
	"errors"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

// ErrTypeMismatch is returned when a setting is accessed with a type other
// than the one it was created with, or a raw value cannot be converted.
var ErrTypeMismatch = errors.New("settings: type mismatch")

// ErrUnknownKey is returned for settings that were never Set.
var ErrUnknownKey = errors.New("settings: unknown key")

func typeMismatch(name, have, want string) error {
	return gkerrors.New("E020").
		WithDetailf("%s holds %s, not %s", name, have, want).
		Wrap(ErrTypeMismatch)
}

func conversionFailed(name, want string, err error) error {
	return gkerrors.New("E020").
		WithDetailf("%s cannot hold this value as %s: %v", name, want, err).
		Wrap(ErrTypeMismatch)
}

func unknownKey(name string) error {
	return gkerrors.New("E021").
		WithDetailf("%s has not been set", name).
		WithSuggestion("Call settings.Set before reading or binding the key").
		Wrap(ErrUnknownKey)
}

func decodeFailed(filename string, err error) error {
	return gkerrors.New("E022").
		WithDetailf("reading %s", filename).
		Wrap(err)
}

func encodeFailed(filename string, err error) error {
	return gkerrors.New("E023").
		WithDetailf("writing %s", filename).
		Wrap(err)
}

func unsupportedFormat(filename string) error {
	return gkerrors.New("E024").
		WithDetailf("%s has no known settings extension", filename).
		WithSuggestion("Use a .yaml, .yml, .toml or .json filename")
}
