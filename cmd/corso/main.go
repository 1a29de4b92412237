// ABOUTME: CLI entrypoint for corso: serve the course site, export it, list lessons, or browse them in a TUI.
// ABOUTME: Loads .env and corso.yaml, builds a zap logger, and cancels long-running commands on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/habeetat/corso/config"
)

var version = "dev"

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

func main() {
	config.LoadDotEnv(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{fs: afero.NewOsFs(), out: os.Stdout, version: version}
	err := a.command().Run(ctx, os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
