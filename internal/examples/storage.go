package examples

import (
	"context"

	"github.com/gamekit-dev/gamekit/pkg/storage"
)

const playerSaveData = "Health: 100\nPosition: 1234 6789\nPeppy: The Creator\n"

const level0 = `0 0 0 0 0 0
0 1 1 1 1 0
0 1 0 0 1 0
0 1 0 0 1 0
0 1 1 1 1 0
0 0 0 0 0 0
`

func runStorage(ctx context.Context, env *Env) error {
	env.separator()

	folder, cleanup, err := env.workspace("storage")
	if err != nil {
		return err
	}

	if err := folder.Write(ctx, "PlayerSaveData.txt", []byte(playerSaveData)); err != nil {
		return err
	}
	env.println("Save data written to storage/PlayerSaveData.txt")

	env.wait()

	data, err := folder.Read(ctx, "PlayerSaveData.txt")
	if err != nil {
		return err
	}
	env.printf("%s", data)

	if ok, err := folder.Exists(ctx, "PlayerSaveData.txt"); err != nil {
		return err
	} else if ok {
		env.println("Yep the file exists!")
	} else {
		env.println("Looks like we mucked up somewhere.")
	}

	env.wait()

	// A storage inside our storage for level data.
	levels, err := folder.Sub("levels")
	if err != nil {
		return err
	}
	if err := levels.Write(ctx, "level0.txt", []byte(level0)); err != nil {
		return err
	}
	env.println("Level data written to storage/levels/level0.txt")

	env.wait()

	if err := levels.Delete(ctx, "level0.txt"); err != nil {
		return err
	}
	if err := folder.DeleteDirectory(ctx, "levels"); err != nil {
		return err
	}

	dirs, err := storage.Directories(ctx, folder, ".")
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		env.println("Yep, our janitor service is in working condition")
	} else {
		env.println("Ehhh?! Who put this rubbish here?!")
	}

	env.wait()

	if err := cleanup(ctx); err != nil {
		return err
	}

	env.separator()
	return nil
}
