package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/waitfile/internal/config"
	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var effective bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the sample or the effective configuration",
		Long: `Print the annotated sample configuration.

With --effective, print the configuration after merging defaults, config
file, WAITFILE_* environment variables and flags instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !effective {
				_, err := fmt.Fprint(out, config.DefaultConfigYAML)
				return err
			}
			return printEffectiveConfig(cmd, opts)
		},
	}
	configCmd.Flags().BoolVar(&effective, "effective", false, "print the resolved configuration")

	configCmd.AddCommand(newConfigInitCmd())
	return configCmd
}

func printEffectiveConfig(cmd *cobra.Command, opts *rootOptions) error {
	loader := opts.loader()
	cfg, err := loader.Load()
	if err != nil {
		return core.ErrValidation(core.CodeInvalidConfig, err.Error()).WithCause(err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return core.ErrValidation(core.CodeInvalidConfig, err.Error()).WithCause(err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	out := cmd.OutOrStdout()
	if used := loader.ConfigFile(); used != "" {
		fmt.Fprintf(out, "# loaded from %s\n", used)
	}
	_, err = out.Write(data)
	return err
}

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		user  bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample configuration to .waitfile.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initTarget(user)
			if err != nil {
				return err
			}
			if err := config.WriteSampleConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&user, "user", false, "write the per-user config instead of the project one")
	return initCmd
}

func initTarget(user bool) (string, error) {
	if user {
		return config.UserConfigPath()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return filepath.Join(cwd, config.ProjectConfigName), nil
}
