// Command ewmhctl inspects and changes the EWMH state of an X display.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/xgb"
)

const (
	displayArg   = "display"
	screenArg    = "screen"
	windowArg    = "window"
	uncheckedArg = "unchecked"
	configArg    = "config"
	logLevelArg  = "log-level"
)

func main() {
	app := cli.NewApp()
	app.Name = "ewmhctl"
	app.Usage = "Inspect and change Extended Window Manager Hints"
	app.Description = "Reads root and window properties, writes them, and " +
		"sends requests to the window manager."
	app.OnUsageError = func(c *cli.Context, e error, b bool) error { return e }

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    displayArg,
			Aliases: []string{"d"},
			Usage:   "X display to connect to (default $DISPLAY)",
		},
		&cli.IntFlag{
			Name:    screenArg,
			Aliases: []string{"s"},
			Usage:   "screen whose root window is used",
		},
		&cli.StringFlag{
			Name:    windowArg,
			Aliases: []string{"w"},
			Usage:   "window id for window properties, decimal or 0x hex",
		},
		&cli.BoolFlag{
			Name:  uncheckedArg,
			Usage: "send requests without error tracking",
		},
		&cli.StringFlag{
			Name:      configArg,
			Aliases:   []string{"c"},
			Usage:     "path to a TOML config file",
			Value:     defaultConfigPath(),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  logLevelArg,
			Usage: "log level: panic, fatal, error, warn, info, debug or trace",
		},
	}

	app.Commands = []*cli.Command{{
		Name:   "atoms",
		Usage:  "List the interned EWMH atoms",
		Action: atomsCommand,
	}, {
		Name:      "get",
		Usage:     "Print properties",
		ArgsUsage: "<property>...",
		Action:    getCommand,
	}, {
		Name:      "set",
		Usage:     "Write a property",
		ArgsUsage: "<property> <value>...",
		Action:    setCommand,
	}, {
		Name:   "dump",
		Usage:  "Print every property that is set",
		Action: dumpCommand,
	}, {
		Name:   "activate",
		Usage:  "Ask the window manager to activate --window",
		Action: activateCommand,
	}, {
		Name:   "close",
		Usage:  "Ask the window manager to close --window",
		Action: closeCommand,
	}, {
		Name:      "desktop",
		Usage:     "Switch to a desktop, or move --window to it",
		ArgsUsage: "<desktop>",
		Action:    desktopCommand,
	}}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig layers the config file and the global flags over the
// defaults.
func resolveConfig(ctx *cli.Context) (config, error) {
	cfg := defaultConfig()
	if path := ctx.String(configArg); path != "" {
		if err := loadConfig(path, ctx.IsSet(configArg), &cfg); err != nil {
			return config{}, err
		}
	}
	if ctx.IsSet(displayArg) {
		cfg.Display = ctx.String(displayArg)
	}
	if ctx.IsSet(screenArg) {
		cfg.Screen = ctx.Int(screenArg)
	}
	if ctx.IsSet(uncheckedArg) {
		cfg.Unchecked = ctx.Bool(uncheckedArg)
	}
	if ctx.IsSet(logLevelArg) {
		lvl, err := logrus.ParseLevel(ctx.String(logLevelArg))
		if err != nil {
			return config{}, errors.Wrap(err, logLevelArg)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func parseWindow(s string) (xgb.Window, error) {
	if s == "" {
		return xgb.WindowNone, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bad window id %q", s)
	}
	return xgb.Window(v), nil
}

// withConn connects to the display and runs fn. The connection is closed
// when fn returns.
func withConn(ctx *cli.Context, fn func(c *ewmh.Conn, t target) error) error {
	cfg, err := resolveConfig(ctx)
	if err != nil {
		return err
	}
	logrus.SetLevel(cfg.LogLevel)
	xgb.Logger.SetLevel(cfg.LogLevel)

	w, err := parseWindow(ctx.String(windowArg))
	if err != nil {
		return err
	}

	X, err := xgb.NewConnDisplay(cfg.Display)
	if err != nil {
		return errors.Wrap(err, "connect")
	}
	defer X.Close()

	c, err := ewmh.Connect(X)
	if err != nil {
		return err
	}
	defer c.Close()

	if cfg.Screen >= c.ScreenCount() {
		return errors.Errorf("display has %d screens, no screen %d",
			c.ScreenCount(), cfg.Screen)
	}
	logrus.WithFields(logrus.Fields{
		"screen":    cfg.Screen,
		"window":    window(w),
		"unchecked": cfg.Unchecked,
	}).Debug("connected")

	return fn(c, target{screen: cfg.Screen, window: w, unchecked: cfg.Unchecked})
}
