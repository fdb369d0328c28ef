package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agiangrant/viewkit"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, v)
	}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or create viewkit configuration",
		Long: `View or create viewkit configuration.

Without arguments, displays the effective configuration: the config file
with flags and VIEWKIT_* environment variables applied on top.`,
		Args: cobra.NoArgs,
		RunE: show,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		newConfigInitCmd(),
		&cobra.Command{
			Use:   "path",
			Short: "Show the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, path, err := loadConfig(v)
				if err != nil {
					return err
				}
				if path == "" {
					path = "(none - using defaults)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

func runConfigShow(cmd *cobra.Command, v *viper.Viper) error {
	cfg, path, err := loadConfig(v)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	if path != "" {
		fmt.Fprintf(out, "# Config file: %s\n\n", path)
	} else {
		fmt.Fprint(out, "# Config file: (none - using defaults)\n\n")
	}
	_, err = out.Write(data)
	return err
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a default config file",
		Long:  `Write the default configuration to PATH, or to viewkit.toml in the current directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viewkit.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}
			if err := viewkit.SaveConfig(path, viewkit.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
