// Package config provides configuration parsing for the gamekit CLI.
//
// The configuration is stored in gamekit.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "storage": {
//	    "backend": "disk",
//	    "dir": "BadRPGGame"
//	  },
//	  "settings": {
//	    "filename": "game.yaml"
//	  },
//	  "serve": {
//	    "addr": "localhost:7070",
//	    "watch": true
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// An S3 backend stores game data in a bucket instead:
//
//	"storage": {
//	  "backend": "s3",
//	  "bucket": "my-games",
//	  "prefix": "BadRPGGame",
//	  "region": "us-east-1"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Storage:", cfg.StorageDir())
package config
