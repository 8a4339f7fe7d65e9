package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/carpool/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("carpool", pflag.ContinueOnError)
	configPath := flags.String("config", "", "override config path (optional)")
	prefsPath := flags.String("prefs", "", "override preferences path (optional)")
	open := flags.String("open", "", "start at a location, e.g. '/trips/driver?tariff=Business'")
	registryURL := flags.String("registry", "", "registry base URL (overrides config)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "carpool: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		Open:        *open,
		RegistryURL: *registryURL,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "carpool: %v\n", err)
		return 1
	}
	return 0
}
