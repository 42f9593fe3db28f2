package bindable

import (
	"errors"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

// ErrInvalidState is returned by SetValue when the bindable is disabled.
var ErrInvalidState = errors.New("bindable: value is disabled")

func disabledError(value any) error {
	return gkerrors.New("E001").
		WithDetailf("cannot set value to %v while the bindable is disabled", value).
		WithSuggestion("Call SetDisabled(false) first, or SetDefault to restore the default value").
		Wrap(ErrInvalidState)
}
