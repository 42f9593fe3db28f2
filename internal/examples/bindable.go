package examples

import (
	"context"
	"errors"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
)

func runBindable(_ context.Context, env *Env) error {
	updateHealthInterface := func(health int) {
		env.printf("The health has been changed to %d\n", health)
	}
	sendHealthChangePacket := func(health int) {
		env.printf("HealthChangePacket sent with value %d\n", health)
	}
	updatePlayerDeathState := func(health int) {
		if health <= 0 {
			env.println("Player has died")
		}
	}
	changePauseState := func(disabled bool) {
		if disabled {
			env.println("The game has been paused")
		} else {
			env.println("The game is no longer paused")
		}
	}

	env.separator()

	// Starting health is 100, and so is the default.
	health := env.observe(bindable.New(100))
	health.SetDefaultValue(100)

	hud := health.AddValueChangedListener(updateHealthInterface)

	// Hit by an enemy.
	if err := health.SetValue(health.Value() - 50); err != nil {
		return err
	}

	// The player paused the game.
	health.SetDisabled(true)
	if err := health.SetValue(100); errors.Is(err, bindable.ErrInvalidState) {
		env.println("Oops, looks like we can't change the value because it's disabled")
	} else if err != nil {
		return err
	}

	env.separator()

	pause := health.AddDisabledChangedListener(changePauseState)
	health.SetDisabled(false)

	packet := health.AddValueChangedListener(sendHealthChangePacket)
	health.AddValueChangedListener(updatePlayerDeathState)
	if err := health.SetValue(-30); err != nil {
		return err
	}

	singlePlayer := true
	if singlePlayer {
		health.RemoveValueChangedListener(packet)
	}

	// Respawn.
	health.SetDefault()

	env.separator()

	// Fires the value listeners, then the disabled listeners.
	health.TriggerChange()

	// Split the interface from the game state.
	health.RemoveValueChangedListener(hud)
	guiHealth := bindable.New(0)
	guiHealth.AddValueChangedListener(updateHealthInterface)

	// Binding fires the listeners of guiHealth, not those of health.
	guiHealth.BindTo(health)
	if err := health.SetValue(health.Value() - 50); err != nil {
		return err
	}
	if health.Value() == guiHealth.Value() {
		env.println("Hey, they're the same value!")
	}

	env.separator()

	health.RemoveDisabledChangedListener(pause)
	pausedHealth := bindable.New(0)
	pausedHealth.AddDisabledChangedListener(changePauseState)

	// Several bindables can bind to the same one.
	pausedHealth.BindTo(health)
	health.SetDisabled(true)
	if health.Disabled() == pausedHealth.Disabled() {
		env.println("I told you they were the same!")
	}

	health.UnbindEvents()
	health.UnbindBindings()
	health.UnbindAll()

	env.separator()
	return nil
}
