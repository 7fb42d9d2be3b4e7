package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/xgb"
)

func atomsCommand(ctx *cli.Context) error {
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		return printAtoms(ctx.App.Writer, c)
	})
}

func printAtoms(w io.Writer, c *ewmh.Conn) error {
	table := c.Atoms()
	names := ewmh.AtomNames()
	for i := 0; i < c.ScreenCount(); i++ {
		names = append(names, fmt.Sprintf("_NET_WM_CM_S%d", i))
	}
	for _, name := range names {
		a, _ := table.Lookup(name)
		if _, err := fmt.Fprintf(w, "%-40s %d\n", name, a); err != nil {
			return err
		}
	}
	return nil
}

func getCommand(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("get: missing property name")
	}
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		return get(ctx.App.Writer, c, t, ctx.Args().Slice())
	})
}

// get pipelines one request per name and prints the replies in order.
func get(w io.Writer, c *ewmh.Conn, t target, names []string) error {
	type result struct {
		name string
		wait pending
	}
	results := make([]result, 0, len(names))
	for _, arg := range names {
		name, p, err := lookup(arg)
		if err != nil {
			return err
		}
		if !p.root && t.window == xgb.WindowNone {
			return errors.Errorf("%s is a window property: use --window", name)
		}
		wait, err := p.get(c, t)
		if err != nil {
			return errors.Wrap(err, name)
		}
		results = append(results, result{name, wait})
	}
	for _, r := range results {
		v, err := r.wait()
		if err != nil {
			return errors.Wrap(err, r.name)
		}
		fmt.Fprintf(w, "%s = %s\n", r.name, v)
	}
	return nil
}

func setCommand(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("set: missing property name")
	}
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		return set(c, t, ctx.Args().First(), ctx.Args().Tail())
	})
}

func set(c *ewmh.Conn, t target, arg string, values []string) error {
	name, p, err := lookup(arg)
	if err != nil {
		return err
	}
	if p.set == nil {
		return errors.Errorf("%s cannot be set", name)
	}
	if !p.root && t.window == xgb.WindowNone {
		return errors.Errorf("%s is a window property: use --window", name)
	}
	req, err := p.set(c, t, values)
	if err != nil {
		return errors.Wrap(err, name)
	}
	return send(c, t, req)
}

// send sends a void request, checked unless t says otherwise.
func send(c *ewmh.Conn, t target, req ewmh.VoidRequest) error {
	if t.unchecked {
		_, err := ewmh.SendVoid(c, req)
		return err
	}
	return ewmh.SendAndCheck(c, req)
}

func dumpCommand(ctx *cli.Context) error {
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		return dump(ctx.App.Writer, c, t)
	})
}

// dump sends a request for every root property, and every window property
// too when t names a window, then collects the replies concurrently.
// Properties that are not set are left out.
func dump(w io.Writer, c *ewmh.Conn, t target) error {
	names := propertyNames(true)
	if t.window != xgb.WindowNone {
		names = append(names, propertyNames(false)...)
	}

	waits := make([]pending, len(names))
	for i, name := range names {
		wait, err := properties[name].get(c, t)
		if err != nil {
			return errors.Wrap(err, name)
		}
		waits[i] = wait
	}

	values := make([]string, len(names))
	var g errgroup.Group
	for i := range waits {
		i := i
		g.Go(func() error {
			v, err := waits[i]()
			switch {
			case err == nil:
				values[i] = v
			case errors.Is(err, ewmh.ErrPropertyNotSet), errors.Is(err, errNoValue):
				logrus.WithField("property", names[i]).Debug("not set")
			default:
				return errors.Wrap(err, names[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range names {
		if values[i] == "" {
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", name, values[i])
	}
	return nil
}

func activateCommand(ctx *cli.Context) error {
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		if t.window == xgb.WindowNone {
			return errors.New("activate: missing --window")
		}
		return send(c, t, ewmh.RequestChangeActiveWindow{
			Screen: t.screen,
			Window: t.window,
			Source: ewmh.ClientSourceTypeOther,
			Time:   xgb.TimeCurrentTime,
		})
	})
}

func closeCommand(ctx *cli.Context) error {
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		if t.window == xgb.WindowNone {
			return errors.New("close: missing --window")
		}
		return send(c, t, ewmh.RequestCloseWindow{
			Screen: t.screen,
			Window: t.window,
			Time:   xgb.TimeCurrentTime,
			Source: ewmh.ClientSourceTypeOther,
		})
	})
}

func desktopCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("desktop: want exactly one desktop number")
	}
	n, err := strconv.ParseUint(ctx.Args().First(), 10, 32)
	if err != nil {
		return errors.Wrap(err, "desktop")
	}
	return withConn(ctx, func(c *ewmh.Conn, t target) error {
		if t.window != xgb.WindowNone {
			return send(c, t, ewmh.RequestChangeWmDesktop{
				Screen:  t.screen,
				Window:  t.window,
				Desktop: uint32(n),
				Source:  ewmh.ClientSourceTypeOther,
			})
		}
		return send(c, t, ewmh.RequestChangeCurrentDesktop{
			Screen:  t.screen,
			Desktop: uint32(n),
			Time:    xgb.TimeCurrentTime,
		})
	})
}
