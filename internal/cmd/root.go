package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"

	"rotary-phone/internal/config"
	"rotary-phone/internal/config/jsonstore"
	"rotary-phone/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	DataDir    string
	JSONOutput bool
	Verbose    bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		JSONOutput: app.JSON,
		Out:        app.Out,
		Err:        app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	paths, err := config.ResolvePaths(p.DataDir)
	if err != nil {
		return nil, err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	// The logger depends on enable_logging, so settings are read first and
	// any problem with the settings file is reported once the logger exists.
	cfg := jsonstore.New(paths.ConfigFile, nil)
	config.ApplyEnvOverrides(cfg)
	logger := logging.New(logging.Options{
		Enabled: cfg.Settings().EnableLogging,
		Verbose: p.Verbose,
		Writer:  errOut,
	})
	cfg.SetLogger(logger.Named("config"))
	if outcome := cfg.Outcome(); outcome.Recovered() {
		logger.Warn("settings file unusable, proceeding with defaults",
			zap.String("path", paths.ConfigFile),
			zap.Stringer("outcome", outcome))
	}
	logger.Debug("data directory resolved", zap.String("dir", paths.Dir))

	app := NewApp(paths, cfg, logger, out, errOut)
	app.JSON = p.JSONOutput || config.EnvBool(config.EnvJSON)
	return app, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(provider)
	err := rootCmd.ExecuteContext(ctx)
	if provider.app != nil {
		_ = provider.app.Logger.Sync()
	}
	return err
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rotary",
		Short: "A rotary phone dialing simulator",
		Long: `Rotary simulates dialing phone numbers one digit at a time.

It keeps a contact book, a log of dialed calls, and usage statistics
derived from that log, all stored as JSON files in ~/.rotary_phone
(override with --dir or ROTARY_PHONE_DIR).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.DataDir, "dir", "", "Data directory (default: $ROTARY_PHONE_DIR or ~/.rotary_phone)")
	rootCmd.PersistentFlags().BoolVarP(&provider.Verbose, "verbose", "v", false, "Enable debug logging")

	// Register all commands
	rootCmd.AddCommand(newDialCmd(provider))
	rootCmd.AddCommand(newContactsCmd(provider))
	rootCmd.AddCommand(newHistoryCmd(provider))
	rootCmd.AddCommand(newStatsCmd(provider))
	rootCmd.AddCommand(newExportCmd(provider))
	rootCmd.AddCommand(newImportCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
