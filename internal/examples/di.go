package examples

import (
	"context"

	"github.com/gamekit-dev/gamekit/pkg/di"
)

type renderer struct {
	env     *Env
	quality int
}

func (r *renderer) render() {
	r.env.printf("Rendering some stuff with quality %d\n", r.quality)
}

type sprite struct {
	renderer *renderer
}

func (s *sprite) InjectDependencies(c *di.Container) error {
	r, err := di.Resolve[*renderer](c)
	if err != nil {
		return err
	}
	s.renderer = r
	return nil
}

func (s *sprite) draw() bool {
	if s.renderer == nil {
		return false
	}
	s.renderer.render()
	return true
}

type audioPlayer struct {
	env *Env
}

func (a *audioPlayer) playAudio() {
	a.env.println("Playing some techno style dance music ...")
}

type player struct {
	renderer    *renderer
	audioPlayer *audioPlayer
}

func (p *player) InjectDependencies(c *di.Container) error {
	deps, err := di.Fill[struct {
		Renderer    *renderer
		AudioPlayer *audioPlayer
	}](c)
	if err != nil {
		return err
	}
	p.renderer = deps.Renderer
	p.audioPlayer = deps.AudioPlayer
	return nil
}

func (p *player) dance() bool {
	if p.renderer == nil || p.audioPlayer == nil {
		return false
	}
	p.renderer.render()
	p.audioPlayer.playAudio()
	p.renderer.env.println("Dance was successful! (but no one saw me)")
	return true
}

func runDependencyInjection(_ context.Context, env *Env) error {
	env.separator()

	container := di.New(nil)
	if err := container.Cache(&renderer{env: env, quality: 100}); err != nil {
		return err
	}

	s := &sprite{}
	if err := container.Inject(s); err != nil || !s.draw() {
		env.println("Looks like dependency injection didn't work ...")
	}

	env.separator()

	// A child container falls back to its parent.
	another := di.New(container)
	unicorn := &sprite{}
	if err := another.Inject(unicorn); err != nil || !unicorn.draw() {
		env.println("But I just wanted a unicorn ...")
	}

	env.separator()

	if err := another.Cache(&audioPlayer{env: env}); err != nil {
		return err
	}

	p := &player{}
	if err := another.Inject(p); err != nil || !p.dance() {
		env.println("Who turned off the disco ball? ...")
	}

	env.separator()
	return nil
}
