package bindable_test

import (
	"errors"
	"fmt"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
)

func Example() {
	health := bindable.New(100)
	health.AddValueChangedListener(func(v int) {
		fmt.Println("The health has been changed to", v)
	})

	_ = health.SetValue(50)

	health.SetDisabled(true)
	if err := health.SetValue(100); errors.Is(err, bindable.ErrInvalidState) {
		fmt.Println("health is frozen")
	}

	health.SetDefault()

	// Output:
	// The health has been changed to 50
	// health is frozen
	// The health has been changed to 100
}

func ExampleBindable_BindTo() {
	health := bindable.New(100)
	gui := bindable.New(0)
	gui.AddValueChangedListener(func(v int) {
		fmt.Println("gui shows", v)
	})

	gui.BindTo(health)
	_ = health.SetValue(70)

	// Output:
	// gui shows 100
	// gui shows 70
}
