// Package main provides the entry point for conpane.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdullathedruid/conpane/internal/app"
	"github.com/abdullathedruid/conpane/internal/config"
	"github.com/abdullathedruid/conpane/internal/logging"
	"github.com/abdullathedruid/conpane/internal/version"
)

var (
	configPath  string
	diagnostics bool
	noInput     bool
	mute        bool
	codePage    int
	usePTY      bool
	logFile     string
	logLevel    string
	noWatch     bool
)

var rootCmd = &cobra.Command{
	Use:   "conpane [flags] [program [args...]]",
	Short: "Run a program in an interactive console pane",
	Long: `conpane runs a program and shows its output in a scrolling console.
Lines typed at the bottom of the console are sent to the program's stdin.
Without a program the default shell is started.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/conpane/config.yaml)")
	flags.BoolVarP(&diagnostics, "diagnostics", "d", false, "show start and exit banners")
	flags.BoolVar(&noInput, "no-input", false, "do not accept typed input")
	flags.BoolVarP(&mute, "mute", "m", false, "hide process output")
	flags.IntVar(&codePage, "code-page", 0, "code page of the process output (65001 is UTF-8)")
	flags.BoolVar(&usePTY, "pty", false, "run the process on a pseudo-terminal")
	flags.StringVar(&logFile, "log-file", "", `log file, "-" to disable`)
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")

	rootCmd.Version = version.String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info("starting", "version", version.Short(), "args", args)

	opts := app.Options{
		ConfigPath: configPath,
		Watch:      !noWatch,
		Logger:     logger,
	}
	if len(args) > 0 {
		opts.File = args[0]
		opts.Args = args[1:]
	}

	application, err := app.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("starting conpane: %w", err)
	}
	return application.Run()
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("diagnostics") {
		cfg.ShowDiagnostics = diagnostics
	}
	if flags.Changed("no-input") {
		cfg.InputEnabled = !noInput
	}
	if flags.Changed("mute") {
		cfg.Mute = mute
	}
	if flags.Changed("code-page") {
		cfg.CodePage = codePage
	}
	if flags.Changed("pty") {
		cfg.UsePTY = usePTY
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}
