// Package cmd provides the entrypoint and CLI command configuration for the
// gapscope application.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/gapscope/internal/config"
	"github.com/kpumuk/gapscope/internal/logger"
	"github.com/kpumuk/gapscope/internal/ui"
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

// newRootCmd builds the command tree.
func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gapscope",
		Short: "Explore per-country indicators as an interactive scatter plot.",
		Long: "Explore per-country indicators as an interactive scatter plot.\n\n" +
			"Hover a marker to see that country's population over time.",
		Args: cobra.NoArgs,
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`gapscope {{printf "version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML config file")
	flags.String("source", "", "CSV file path or http(s) URL")
	flags.Int("year", 0, "time slice to show (default latest)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to file")
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "data", "csv":
			name = "source"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)

	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for gapscope",
	)

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cpuprofile, err := cmd.Flags().GetString("cpuprofile")
		if err != nil {
			return fmt.Errorf("parse cpuprofile flag: %w", err)
		}

		cfg, closeLog, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

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

		app := ui.New(cfg)
		p := tea.NewProgram(app)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run gapscope: %w", err)
		}

		return nil
	}

	rootCmd.AddCommand(newSVGCmd(), newDescribeCmd())
	return rootCmd
}

// Execute initializes and runs the gapscope terminal application.
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

// setup loads the config, applies flag overrides and initializes logging.
// The returned func closes the log file.
func setup(cmd *cobra.Command) (*config.Config, func(), error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("parse config flag: %w", err)
	}
	cfg, err := config.Load(cmd.Context(), path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		w        io.Writer = io.Discard
		closeLog           = func() {}
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}
	if err := logger.Init(w, cfg.LogLevel); err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, closeLog, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	if flags.Changed("source") {
		if cfg.Source, err = flags.GetString("source"); err != nil {
			return fmt.Errorf("parse source flag: %w", err)
		}
	}
	if flags.Changed("year") {
		if cfg.Year, err = flags.GetInt("year"); err != nil {
			return fmt.Errorf("parse year flag: %w", err)
		}
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = flags.GetString("log-level"); err != nil {
			return fmt.Errorf("parse log-level flag: %w", err)
		}
	}
	if flags.Changed("log-file") {
		if cfg.LogFile, err = flags.GetString("log-file"); err != nil {
			return fmt.Errorf("parse log-file flag: %w", err)
		}
	}
	return nil
}
