// Package storage provides a folder-like place to keep game data.
//
// A Storage holds named files (slash-separated, relative names) and can
// hand out nested storages rooted at a subdirectory:
//
//	store, _ := storage.NewDisk("BadRPGGame")
//	_ = store.Write(ctx, "PlayerSaveData.txt", []byte("Health: 100\n"))
//
//	levels, _ := store.Sub("levels")
//	_ = levels.Write(ctx, "level0.txt", data) // BadRPGGame/levels/level0.txt
//
// Two backends are provided: Disk stores files in a local directory and S3
// stores them as objects under a key prefix in an S3 bucket. Traced wraps
// any Storage and records an OpenTelemetry span per call.
//
// Names that would escape the storage root (absolute paths or paths
// starting with "..") fail with ErrInvalidPath. Reading or deleting a
// missing file fails with ErrNotFound.
package storage
