// carpool-registry serves a development trip registry from memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/five82/carpool/internal/registryserver"
	"github.com/five82/carpool/internal/state"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("carpool-registry", pflag.ContinueOnError)
	addr := flags.String("addr", ":3000", "listen address")
	seedPath := flags.String("seed", "", "YAML seed file (defaults to built-in sample data)")
	debug := flags.Bool("debug", false, "log at debug level and run gin in debug mode")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "carpool-registry: %v\n", err)
		return 2
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	seed, err := registryserver.LoadSeed(*seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carpool-registry: %v\n", err)
		return 1
	}
	store := state.NewStore(seed.Regions, seed.Trips)
	logger.Info("registry seeded", "regions", len(seed.Regions), "trips", store.Len())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := registryserver.Serve(ctx, *addr, registryserver.NewRouter(store, logger), logger); err != nil {
		fmt.Fprintf(os.Stderr, "carpool-registry: %v\n", err)
		return 1
	}
	return 0
}
