package examples

import (
	"context"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
	"github.com/gamekit-dev/gamekit/pkg/settings"
)

type weirdKey int

const (
	numberOfTimesIHaveDied weirdKey = iota
	technoHasGirlfriend
	killDeathRatioInMinecraft
	technosOsuProfile
)

func (k weirdKey) String() string {
	switch k {
	case numberOfTimesIHaveDied:
		return "NumberOfTimesIHaveDied"
	case technoHasGirlfriend:
		return "TechnoHasGirlfriend"
	case killDeathRatioInMinecraft:
		return "KillDeathRatioInMinecraft"
	case technosOsuProfile:
		return "TechnosOsuProfile"
	default:
		return "Unknown"
	}
}

func runConfigManager(ctx context.Context, env *Env) error {
	env.separator()

	folder, cleanup, err := env.workspace("config-manager")
	if err != nil {
		return err
	}

	var opts []settings.Option
	if env.Observer != nil {
		opts = append(opts, settings.WithObserver(env.Observer))
	}
	config, err := settings.New[weirdKey](folder, opts...)
	if err != nil {
		return err
	}

	if _, err := settings.Set(config, numberOfTimesIHaveDied, 3041); err != nil {
		return err
	}
	if _, err := settings.Set(config, technoHasGirlfriend, false); err != nil {
		return err
	}
	if _, err := settings.Set(config, killDeathRatioInMinecraft, 0.34); err != nil {
		return err
	}
	if _, err := settings.Set(config, technosOsuProfile, "https://osu.ppy.sh/users/10338558"); err != nil {
		return err
	}

	if err := config.Save(ctx); err != nil {
		return err
	}
	env.printf("Settings saved to config-manager/%s\n", config.Filename())

	env.wait()

	// Set returns the setting's bindable, ready to bind.
	deathCounter := env.observe(bindable.New(3041))
	cell, err := settings.Set(config, numberOfTimesIHaveDied, 3041)
	if err != nil {
		return err
	}
	cell.BindTo(deathCounter)

	// The same thing once the setting exists.
	if err := settings.BindWith(config, numberOfTimesIHaveDied, deathCounter); err != nil {
		return err
	}

	if err := deathCounter.SetValue(9001); err != nil {
		return err
	}
	deaths, err := settings.Get[weirdKey, int](config, numberOfTimesIHaveDied)
	if err != nil {
		return err
	}
	env.printf("Configuration Death Count: %d\n", deaths)

	if err := config.Save(ctx); err != nil {
		return err
	}
	if err := config.Load(ctx); err != nil {
		return err
	}

	if deaths, _ := settings.Get[weirdKey, int](config, numberOfTimesIHaveDied); deaths == 9001 {
		env.println("Yep, the ConfigManager can save and load!")
	} else {
		env.println("Hold up, we mucked up somewhere")
	}

	env.wait()

	// The file name, and with it the format, is an option.
	custom, err := settings.New[weirdKey](folder, settings.WithFilename("this_amazing_filename.yaml"))
	if err != nil {
		return err
	}
	if _, err := settings.Set(custom, technoHasGirlfriend, true); err != nil {
		return err
	}
	if _, err := settings.Set(custom, numberOfTimesIHaveDied, -1); err != nil {
		return err
	}
	if err := custom.Save(ctx); err != nil {
		return err
	}

	if ok, err := folder.Exists(ctx, "this_amazing_filename.yaml"); err != nil {
		return err
	} else if ok {
		env.println("Yep, this custom filename doohickey works!")
	} else {
		env.println("Nope.")
	}

	env.wait()

	if err := cleanup(ctx); err != nil {
		return err
	}

	env.separator()
	return nil
}
