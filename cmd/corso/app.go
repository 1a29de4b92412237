// ABOUTME: Command tree for the corso CLI built on urfave/cli v3.
// ABOUTME: Every subcommand shares one config and logger setup so flags and CORSO_* variables behave the same.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/habeetat/corso/config"
	"github.com/habeetat/corso/lesson"
	"github.com/habeetat/corso/logging"
	"github.com/habeetat/corso/tui"
	"github.com/habeetat/corso/web"
)

var (
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4bb9ab")).Bold(true)
	appendixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF85B4")).Italic(true)
	slugStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// app carries the process-level dependencies the commands share.
type app struct {
	fs      afero.Fs
	out     io.Writer
	version string
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "corso",
		Usage:   "Serve and publish a Markdown course site",
		Version: a.version,
		Writer:  a.out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the site config file",
				Value:   config.DefaultPath,
				Sources: cli.EnvVars("CORSO_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-mode",
				Usage: "development or production (overrides log_mode)",
			},
		},
		Commands: []*cli.Command{
			a.serveCmd(),
			a.buildCmd(),
			a.listCmd(),
			a.browseCmd(),
			a.versionCmd(),
		},
	}
}

// setup loads the site config, applies flag overrides, and builds the logger
// and server for a command.
func (a *app) setup(cmd *cli.Command, overrides ...func(*config.Config)) (*web.Server, *config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(a.fs, cmd.String("config"))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading config")
	}
	if mode := cmd.String("log-mode"); mode != "" {
		cfg.LogMode = mode
	}
	for _, override := range overrides {
		override(cfg)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, err
	}

	srv, err := web.NewServer(web.ServerConfig{Site: *cfg, Fs: a.fs, Logger: logger})
	if err != nil {
		return nil, nil, nil, err
	}
	return srv, cfg, logger, nil
}

func (a *app) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the course site over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides addr)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srv, cfg, logger, err := a.setup(cmd, func(c *config.Config) {
				if addr := cmd.String("addr"); addr != "" {
					c.Addr = addr
				}
			})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			fmt.Fprintf(a.out, "%s on http://%s\n", numberStyle.Render(cfg.Course), cfg.Addr)
			return srv.ListenAndServe(ctx)
		},
	}
}

func (a *app) buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Export the course site as static HTML",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "dist"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srv, _, logger, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			out := cmd.String("out")
			manifest, err := srv.Export(ctx, out)
			if err != nil {
				return errors.Wrap(err, "exporting site")
			}
			fmt.Fprintf(a.out, "built %d pages (%d lessons) into %s\n", len(manifest.Pages), len(manifest.Lessons), out)
			fmt.Fprintf(a.out, "build %s\n", slugStyle.Render(manifest.ID))
			return nil
		},
	}
}

func (a *app) listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the lessons as they appear on the homepage",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print lesson descriptors as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srv, _, logger, err := a.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			descriptors := srv.Catalog().List()
			if cmd.Bool("json") {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(descriptors)
			}
			printEntries(a.out, lesson.Label(descriptors))
			return nil
		},
	}
}

// printEntries writes one styled line per entry with its slug alongside.
func printEntries(w io.Writer, entries []lesson.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, slugStyle.Render("no lessons found"))
		return
	}
	for _, e := range entries {
		style := numberStyle
		if e.IsAppendix() {
			style = appendixStyle
		}
		fmt.Fprintf(w, "%s  %s\n", style.Render(e.Text), slugStyle.Render(e.Slug))
	}
}

func (a *app) browseCmd() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the lessons in an interactive terminal UI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srv, cfg, logger, err := a.setup(cmd, func(c *config.Config) {
				// Console logs would tear the alternate screen.
				c.LogMode = logging.ModeSilent
			})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p := tea.NewProgram(tui.NewAppModel(cfg.Course, srv.Catalog()), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "running browser")
			}
			return nil
		},
	}
}

func (a *app) versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the corso version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintf(a.out, "corso %s\n", a.version)
			return nil
		},
	}
}
