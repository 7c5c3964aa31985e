// Package cmd implements the rotary command-line interface.
package cmd

import (
	"io"
	"os"
	"time"

	"rotary-phone/internal/config"
	"rotary-phone/internal/config/jsonstore"
	"rotary-phone/internal/contacts"
	"rotary-phone/internal/dialer"
	"rotary-phone/internal/history"
	"rotary-phone/internal/stats"
	"rotary-phone/internal/transfer"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Paths    config.Paths
	Config   *jsonstore.JSONStore
	Contacts *contacts.Store
	History  *history.Store
	Stats    *stats.Engine
	Transfer *transfer.Engine
	Logger   *zap.Logger
	Out      io.Writer
	Err      io.Writer
	JSON     bool // output in JSON format

	// Sleep replaces time.Sleep in the dial animation. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// NewApp wires the stores and engines for the data directory in paths.
// cfg must be the settings store for paths.ConfigFile. opts are passed to
// the history store.
func NewApp(paths config.Paths, cfg *jsonstore.JSONStore, logger *zap.Logger, out, errOut io.Writer, opts ...history.Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := contacts.New(paths.ContactsFile, logger.Named("contacts"))
	hs := history.New(paths.HistoryFile, cfg, logger.Named("history"), opts...)
	return &App{
		Paths:    paths,
		Config:   cfg,
		Contacts: cs,
		History:  hs,
		Stats:    stats.New(hs, cs),
		Transfer: transfer.New(cs, hs, logger.Named("transfer")),
		Logger:   logger,
		Out:      out,
		Err:      errOut,
	}
}

// Dialer returns a dialer configured from the current settings. In JSON
// mode the animation is discarded.
func (a *App) Dialer() *dialer.Dialer {
	cfg := a.Config.Settings()
	out := a.Out
	if a.JSON {
		out = io.Discard
	}
	opts := []dialer.Option{
		dialer.WithLengthBounds(cfg.MinNumberLength, cfg.MaxNumberLength),
		dialer.WithLogger(a.Logger.Named("dialer")),
	}
	if a.Sleep != nil {
		opts = append(opts, dialer.WithSleep(a.Sleep))
	}
	return dialer.New(out, a.History, opts...)
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}
