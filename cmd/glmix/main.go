package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/fosdem/glmix/lib/app"
	"github.com/fosdem/glmix/lib/config"
	"github.com/fosdem/glmix/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [config file]\n", os.Args[0])
		os.Exit(2)
	}
	var filename string
	if len(os.Args) == 2 {
		filename = os.Args[1]
	}

	log.Setup(os.Stdout, slog.LevelInfo)
	cfg, err := config.Load(filename)
	if err != nil {
		slog.Error("Config invalid", slog.String("module", "main"), slog.Any("error", err))
		os.Exit(1)
	}
	log.Setup(os.Stdout, cfg.LogLevel)

	err = app.New(cfg).Run()
	if err != nil {
		slog.Error("Could not start", slog.String("module", "main"), slog.Any("error", err))
		os.Exit(1)
	}
}
