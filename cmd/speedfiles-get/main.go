// Package main provides the speedfiles-get command-line tool for downloading
// TurboSpeed placeholder files by size.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turbospeed/speedfiles/pkg/app"
	"github.com/turbospeed/speedfiles/pkg/config"
)

var version = "development"

func printVersion() {
	fmt.Println(version)
}

func loadConfiguration(cfgFile string) *config.Config {
	var cfg *config.Config
	var err error

	if len(cfgFile) > 0 {
		cfg, err = config.NewConfigFromFile(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, err = config.NewConfigFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	return cfg
}

func main() {
	var cfgFile, outputDir string
	var vOption, helpOption bool

	// Parameters treatment
	flag.StringVar(&cfgFile, "c", "", "configuration file")
	flag.StringVar(&outputDir, "o", "", "directory to save files to (default: configured output dir)")
	flag.BoolVar(&vOption, "v", false, "Get version")
	flag.BoolVar(&helpOption, "h", false, "help")
	flag.Parse()

	if helpOption {
		flag.Usage()
		os.Exit(0)
	}

	if vOption {
		printVersion()
		os.Exit(0)
	}

	tokens := flag.Args()
	if len(tokens) == 0 {
		fmt.Fprintln(os.Stderr, "usage: speedfiles-get [options] <size> [<size>...]  e.g. speedfiles-get 100mb 1gb")
		os.Exit(1)
	}

	cfg := loadConfiguration(cfgFile)
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	l := initTrace(os.Getenv("DEBUGLEVEL"), cfg.NoLogTime)
	a.SetLogger(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Download(ctx, tokens); err != nil {
		l.Error("error(s) occurred", "error", err)
		os.Exit(1)
	}
}
