// Package cmd provides the entrypoint and CLI command configuration for the
// keyboardist demo.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/keyboardist/internal/config"
	"github.com/kpumuk/keyboardist/internal/keylog"
	"github.com/kpumuk/keyboardist/internal/logging"
	"github.com/kpumuk/keyboardist/internal/ui"
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keyboardist",
		Short: "Keyboard shortcut scopes for terminal UIs, in a demo.",
		Long: "An interactive demo of keyboardist: a keyboardist picker, a tempo counter and a love meter, " +
			"each with its own key binding scopes, plus a live key monitor.",
		Args: cobra.NoArgs,
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`keyboardist {{printf "version %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", "config file (default $XDG_CONFIG_HOME/keyboardist/config.toml)")
	flags.String("log-file", "", "append logs to this file (default: discard)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or text")
	flags.Bool("monitor", true, "record key events for the key monitor")
	flags.String("cpuprofile", "", "write cpu profile to file")
	flags.BoolP("help", "h", false, "help for keyboardist")
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "logfile":
			name = "log-file"
		case "loglevel":
			name = "log-level"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cmd.Flags())
	}
	return rootCmd
}

// loadConfig reads the config file named by the flags, with changed flags
// taking precedence.
func loadConfig(flags *pflag.FlagSet) (*config.Loader, config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("parse config flag: %w", err)
	}
	loader := config.NewLoader(path, nil)
	if err := loader.BindFlags(flags); err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return loader, cfg, nil
}

func run(ctx context.Context, flags *pflag.FlagSet) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cpuprofile, err := flags.GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("parse cpuprofile flag: %w", err)
	}

	loader, cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logFile})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	loader.SetLogger(logger)

	if cpuprofile != "" {
		profileFile, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpuprofile file: %w", err)
		}
		if err := pprof.StartCPUProfile(profileFile); err != nil {
			_ = profileFile.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = profileFile.Close()
		}()
	}

	opts := []ui.Option{ui.WithLogger(logger)}
	if cfg.Monitor.Enabled {
		opts = append(opts, ui.WithKeyLog(keylog.New(cfg.Monitor.Limit)))
	}
	app, err := ui.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(app, tea.WithContext(ctx))
	loader.Watch(ctx, func(cfg config.Config, err error) {
		p.Send(ui.ConfigReloadedMsg{Config: cfg, Err: err})
	})

	logger.Info("starting", "config", cfg.File, "monitor", cfg.Monitor.Enabled)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run keyboardist: %w", err)
	}
	return nil
}

// Execute initializes and runs the keyboardist demo.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := newRootCmd(buildVersion(version, commit, date, builtBy))
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}
