// Package main provides the speedfiles command-line tool for listing the
// TurboSpeed placeholder files available for download.
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

func printConfiguration() {
	c, err := config.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	c.Usage()

	fmt.Println("--------------------------------------------------")
	fmt.Println("Speedfiles configuration:")
	fmt.Print(c.String())
	os.Exit(0)
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
	var cfgFile, copyToken string
	var vOption, helpOption, printCfg, watchOption bool

	// Parameters treatment
	flag.StringVar(&cfgFile, "c", "", "configuration file")
	flag.BoolVar(&printCfg, "cfg", false, "print configuration")
	flag.StringVar(&copyToken, "copy", "", "run the copy hook for the given size (e.g. 100mb)")
	flag.BoolVar(&watchOption, "w", false, "watch mode: rebuild the list periodically")
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

	if printCfg {
		printConfiguration()
	}

	cfg := loadConfiguration(cfgFile)

	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	l := initTrace(os.Getenv("DEBUGLEVEL"), cfg.NoLogTime)
	a.SetLogger(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if copyToken != "" {
		url, err := a.Copy(ctx, copyToken)
		if err != nil {
			l.Error("copy failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(url)
		return
	}

	if watchOption {
		err = a.Watch(ctx)
	} else {
		err = a.Run(ctx)
	}
	if err != nil {
		l.Error("error(s) occurred", "error", err)
		os.Exit(1)
	}
}
