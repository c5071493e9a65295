package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/flick-bot-go/app"
	"github.com/soocke/flick-bot-go/config"
)

const defaultConfigPath = "config.json"

type flags struct {
	configPath string
	debug      bool
	logFile    string
	detector   string
	window     string
	preview    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "flick-bot",
		Short:         "Flicks a tracked object at a target seen on screen.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			level := ParseLevel(cfg.LogLevel)
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := NewLogger(level, cfg.LogFile)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.NewApp(cfg, logger).Run(ctx)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", defaultConfigPath, "config file")
	root.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging and runtime diagnostics")
	root.Flags().StringVar(&f.logFile, "log-file", "", "also write logs to this rotated file")
	root.Flags().StringVar(&f.detector, "detector", "", "detector executable")
	root.Flags().StringVar(&f.window, "window", "", "only act while this window is focused")
	root.Flags().StringVar(&f.preview, "preview", "", "save a crop of each shot to this path")

	root.AddCommand(newConfigCmd(f))
	return root
}

func newConfigCmd(f *flags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Manage the config file"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(f.configPath); err == nil {
				return fmt.Errorf("%s already exists", f.configPath)
			}
			if err := config.DefaultConfig().Save(f.configPath); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", f.configPath)
			return nil
		},
	})
	return cfgCmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", f.configPath, err)
	}
	fl := cmd.Flags()
	if fl.Changed("debug") {
		cfg.Debug = f.debug
	}
	if fl.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fl.Changed("detector") {
		cfg.DetectorCommand = f.detector
	}
	if fl.Changed("window") {
		cfg.WindowTitle = f.window
	}
	if fl.Changed("preview") {
		cfg.PreviewPath = f.preview
	}
	_ = cfg.Validate()
	return cfg, nil
}
