package examples

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
	"github.com/gamekit-dev/gamekit/pkg/storage"
)

func newTestEnv(t *testing.T) (*Env, *bytes.Buffer, *storage.Disk) {
	t.Helper()
	disk, err := storage.NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	var out bytes.Buffer
	return &Env{Out: &out, Storage: disk}, &out, disk
}

func runExample(t *testing.T, name string, env *Env) {
	t.Helper()
	e, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	if err := e.Run(context.Background(), env); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

// assertInOrder checks that every want line appears in out, in order.
func assertInOrder(t *testing.T, out string, want ...string) {
	t.Helper()
	rest := out
	for _, w := range want {
		i := strings.Index(rest, w)
		if i < 0 {
			t.Fatalf("missing %q (in order) in output:\n%s", w, out)
		}
		rest = rest[i+len(w):]
	}
}

func TestBindableNarration(t *testing.T) {
	env, out, _ := newTestEnv(t)
	runExample(t, "bindable", env)

	assertInOrder(t, out.String(),
		"The health has been changed to 50",
		"Oops, looks like we can't change the value because it's disabled",
		"The game is no longer paused",
		"The health has been changed to -30",
		"HealthChangePacket sent with value -30",
		"Player has died",
		"The health has been changed to 100",
		// TriggerChange
		"The health has been changed to 100",
		"The game is no longer paused",
		// guiHealth binds
		"The health has been changed to 100",
		"The health has been changed to 50",
		"Hey, they're the same value!",
		// pausedHealth binds, then the game pauses
		"The game is no longer paused",
		"The game has been paused",
		"I told you they were the same!",
	)

	if n := strings.Count(out.String(), "HealthChangePacket"); n != 1 {
		t.Errorf("packet listener ran %d times, want 1", n)
	}
}

func TestConfigManagerNarration(t *testing.T) {
	env, out, disk := newTestEnv(t)
	runExample(t, "config-manager", env)

	assertInOrder(t, out.String(),
		"Settings saved to config-manager/game.yaml",
		"Configuration Death Count: 9001",
		"Yep, the ConfigManager can save and load!",
		"Yep, this custom filename doohickey works!",
	)

	dirs, _ := storage.Directories(context.Background(), disk, "")
	if len(dirs) != 0 {
		t.Errorf("example folder should be removed, found %v", dirs)
	}
}

func TestStorageNarration(t *testing.T) {
	env, out, disk := newTestEnv(t)
	runExample(t, "storage", env)

	assertInOrder(t, out.String(),
		"Health: 100",
		"Position: 1234 6789",
		"Yep the file exists!",
		"Yep, our janitor service is in working condition",
	)

	dirs, _ := storage.Directories(context.Background(), disk, "")
	if len(dirs) != 0 {
		t.Errorf("example folder should be removed, found %v", dirs)
	}
}

func TestKeepLeavesFiles(t *testing.T) {
	env, _, disk := newTestEnv(t)
	env.Keep = true
	runExample(t, "storage", env)

	ok, err := disk.Exists(context.Background(), "storage/PlayerSaveData.txt")
	if err != nil || !ok {
		t.Errorf("save data should be kept, Exists = %v, %v", ok, err)
	}
}

func TestLazyListNarration(t *testing.T) {
	env, out, _ := newTestEnv(t)
	runExample(t, "lazy-list", env)

	assertInOrder(t, out.String(),
		"3 squared is 9",
		"0 1 4 9 16 25 36 49 64 81 ",
	)
}

func TestDependencyInjectionNarration(t *testing.T) {
	env, out, _ := newTestEnv(t)
	runExample(t, "dependency-injection", env)

	got := out.String()
	assertInOrder(t, got,
		"Rendering some stuff with quality 100",
		"Rendering some stuff with quality 100",
		"Rendering some stuff with quality 100",
		"Playing some techno style dance music ...",
		"Dance was successful! (but no one saw me)",
	)
	for _, failure := range []string{"didn't work", "unicorn", "disco ball"} {
		if strings.Contains(got, failure) {
			t.Errorf("unexpected failure line containing %q", failure)
		}
	}
}

func TestPauseHook(t *testing.T) {
	env, out, _ := newTestEnv(t)
	pauses := 0
	env.Pause = func() { pauses++ }

	runExample(t, "storage", env)

	if pauses != 4 {
		t.Errorf("pauses = %d, want 4", pauses)
	}
	if strings.Count(out.String(), waitLine) != 4 {
		t.Errorf("expected a wait banner per pause:\n%s", out)
	}
}

func TestNoPauseWithoutHook(t *testing.T) {
	env, out, _ := newTestEnv(t)
	runExample(t, "config-manager", env)

	if strings.Contains(out.String(), waitLine) {
		t.Error("no wait banner expected without a Pause hook")
	}
}

func TestStorageRequired(t *testing.T) {
	var out bytes.Buffer
	e, _ := Lookup("storage")
	if err := e.Run(context.Background(), &Env{Out: &out}); err == nil {
		t.Error("expected error without storage")
	}
}

func TestAllAndLookup(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("All() = %d examples, want 5", len(all))
	}
	if all[0].Name != "bindable" {
		t.Errorf("first example = %q", all[0].Name)
	}
	for _, e := range all {
		if e.Summary == "" || e.Run == nil {
			t.Errorf("example %q is incomplete", e.Name)
		}
	}

	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}

	_, err := Lookup("nope")
	var ge *gkerrors.GameError
	if !errors.As(err, &ge) || ge.Code != "E150" {
		t.Errorf("Lookup(nope) = %v, want E150", err)
	}
}
