package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"umlwizard/internal/app"
)

var (
	home       string
	configPath string
	passphrase string
	serviceURL string
	timeout    time.Duration
	logLevel   string
	logFile    string

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "umlwizard",
		Short:         "Generate UML diagrams from a requirements document",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".umlwizard")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg, err := app.LoadConfig(home, configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)

			wire, err = app.NewWire(cfg)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "session and config dir (default ~/.umlwizard)")
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase to seal the session checkpoint")
	pf.StringVar(&serviceURL, "service-url", "", "diagram service base URL")
	pf.DurationVar(&timeout, "timeout", 0, "per-request timeout for the diagram service")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this rotating file instead of stderr")

	root.AddCommand(
		newCmd(),
		submitCmd(),
		usecaseCmd(),
		sequenceCmd(),
		activityCmd(),
		statusCmd(),
		exportCmd(),
		runCmd(),
		serveCmd(),
	)
	return root.Execute()
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command, cfg *app.Config) {
	flags := cmd.Flags()
	if flags.Changed("passphrase") {
		cfg.Passphrase = passphrase
	}
	if flags.Changed("service-url") {
		cfg.ServiceURL = serviceURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
}
