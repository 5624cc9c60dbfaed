// Command bust rewrites local stylesheet and script references in a tree
// of HTML files to carry cache-busting version parameters.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pascalhuerten/bust"
	"github.com/pascalhuerten/bust/watch"
	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "root",
		Usage: "project root containing the public directory",
		Value: ".",
	}
}

func versionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "fixed version token; asset mtimes when empty",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bust",
		Usage: "cache-bust asset references in HTML files",

		// -v carries the run's version token, not the app version
		HideVersion: true,

		Flags: []cli.Flag{
			rootFlag(),
			versionFlag(),
			&cli.BoolFlag{
				Name:  "minify",
				Usage: "minify HTML while rewriting",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "write a YAML summary of the run to this file",
			},
		},
		Action: bustAction,

		Commands: []*cli.Command{
			{
				Name:   "strip",
				Usage:  "remove version parameters from asset references",
				Flags:  []cli.Flag{rootFlag()},
				Action: stripAction,
			},
			{
				Name:  "serve",
				Usage: "serve the public directory with busted asset URLs",
				Flags: []cli.Flag{
					rootFlag(),
					versionFlag(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "address to listen on",
						Value: ":8000",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "re-run the rewrite when files change",
					},
				},
				Action: serveAction,
			},
		},
	}
}

func fromFlags(c *cli.Context) *bust.Bust {
	return &bust.Bust{
		Root:    c.String("root"),
		Version: c.String("version"),
		Minify:  c.Bool("minify"),
	}
}

func bustAction(c *cli.Context) error {
	b := fromFlags(c)

	stats, err := b.Do()
	if err != nil {
		return err
	}

	report(c, stats)

	if path := c.String("manifest"); path != "" {
		err = b.WriteManifest(path, stats)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(c.App.Writer, "Done.")

	return nil
}

func stripAction(c *cli.Context) error {
	b := fromFlags(c)

	stats, err := b.Strip()
	if err != nil {
		return err
	}

	report(c, stats)
	fmt.Fprintln(c.App.Writer, "Done.")

	return nil
}

func report(c *cli.Context, stats bust.Stats) {
	for _, path := range stats.Changed {
		fmt.Fprintf(c.App.Writer, "Updated: %s\n", path)
	}
}

func serveAction(c *cli.Context) error {
	b := fromFlags(c)
	srv := bust.NewServer(b)

	stats, err := b.Do()
	if err != nil {
		return err
	}

	b.Logf("I: busted %d of %d files", len(stats.Changed), stats.Scanned)

	if c.Bool("watch") {
		w, err := watch.New(b.Public)
		if err != nil {
			return err
		}
		defer w.Stop()

		w.Notify(srv)
	}

	addr := c.String("addr")
	b.Logf("I: serving %s on %s", b.Public, addr)

	server := http.Server{
		Addr:    addr,
		Handler: srv,
	}

	return server.ListenAndServe()
}
