package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/waitfile/internal/config"
	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
	"github.com/hugo-lorenzo-mato/waitfile/internal/logging"
	"github.com/hugo-lorenzo-mato/waitfile/internal/metrics"
	"github.com/hugo-lorenzo-mato/waitfile/internal/waiter"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitConfig = 2
)

var (
	// Version info - set via SetVersion()
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the application version string.
func GetVersion() string {
	return appVersion
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case core.IsValidation(err):
		return ExitConfig
	default:
		return ExitFailed
	}
}

// FormatError renders err for the terminal without the category prefix.
func FormatError(err error) string {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) {
		return err.Error()
	}
	if domErr.Cause != nil && !strings.Contains(domErr.Message, domErr.Cause.Error()) {
		return domErr.Message + ": " + domErr.Cause.Error()
	}
	return domErr.Message
}

// rootOptions holds state shared by the root command and its subcommands.
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
}

func (o *rootOptions) loader() *config.Loader {
	return config.NewLoaderWithViper(o.v).WithConfigFile(o.cfgFile)
}

// NewRootCmd builds the command tree with a private viper instance.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "waitfile [flags] RESOURCE...",
		Short: "Wait until files exist and stop changing size",
		Long: `waitfile polls the size of every RESOURCE and exits once all of them
exist and none has changed for a full stability window.

With --reverse it instead waits until every RESOURCE is gone.
Exit status is 0 on success, 1 on timeout or interrupt, 2 on invalid options.`,
		Example: `  waitfile build/output.tar.gz
  waitfile --timeout 30s --log a.csv b.csv
  waitfile --reverse /tmp/job.lock`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(cmd, args, opts)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return core.ErrValidation(core.CodeInvalidOptions, err.Error()).WithCause(err)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "",
		"config file (default: ./.waitfile.yaml or ~/.config/waitfile/config.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "auto", "log format (auto, text, json)")
	pf.Bool("no-color", false, "disable colored output")

	f := rootCmd.Flags()
	f.StringP("delay", "d", "0s", "time before the first poll")
	f.StringP("interval", "i", "250ms", "time between polls")
	f.StringP("window", "w", "750ms", "quiet period required before succeeding")
	f.StringP("timeout", "t", config.TimeoutInfinite, "give up after this long (\"infinite\" waits forever)")
	f.BoolP("reverse", "r", false, "wait for resources to disappear")
	f.BoolP("log", "l", false, "log progress")
	f.BoolP("verbose", "v", false, "log every snapshot and window verdict")
	f.String("metrics-file", "", "write Prometheus metrics to this file when done")

	// Bind flags to viper (errors are nil when flag exists)
	for key, flag := range map[string]string{
		"log.level":     "log-level",
		"log.format":    "log-format",
		"log.no_color":  "no-color",
		"wait.delay":    "delay",
		"wait.interval": "interval",
		"wait.window":   "window",
		"wait.timeout":  "timeout",
		"wait.reverse":  "reverse",
		"wait.log":      "log",
		"wait.verbose":  "verbose",
		"metrics.file":  "metrics-file",
	} {
		fl := f.Lookup(flag)
		if fl == nil {
			fl = pf.Lookup(flag)
		}
		_ = opts.v.BindPFlag(key, fl)
	}

	rootCmd.AddCommand(newVersionCmd(), newConfigCmd(opts))
	return rootCmd
}

func runWait(cmd *cobra.Command, args []string, opts *rootOptions) error {
	loader := opts.loader()
	if len(args) > 0 {
		loader.Set("wait.resources", args)
	}

	cfg, err := loader.Load()
	if err != nil {
		return core.ErrValidation(core.CodeInvalidConfig, err.Error()).WithCause(err)
	}
	waitOpts, err := cfg.WaitOptions()
	if err != nil {
		return err
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.New(logCfg)
	cliLog := logger.WithComponent("cli")
	if used := loader.ConfigFile(); used != "" {
		cliLog.Debug("loaded config", "file", used)
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.File != "" {
		recorder = metrics.NewRecorder()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			cliLog.Warn("received signal, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := waiter.NewRunner(
		waiter.WithLogger(logger),
		waiter.WithRecorder(recorder),
	)
	waitErr := runner.Wait(ctx, &waitOpts)

	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.Metrics.File); err != nil {
			cliLog.Error("writing metrics textfile", "file", cfg.Metrics.File, "error", err)
			if waitErr == nil {
				return fmt.Errorf("writing metrics textfile: %w", err)
			}
		}
	}
	return waitErr
}
