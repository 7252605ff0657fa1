package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micaelyMelo/OficinaMecanica/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: "tools",
	Short:   "Inspect or create the config file",
	Long: `Settings are read, lowest precedence first, from built-in defaults,
oficina.toml (working directory, then ~/.config/oficina), a .env file in
the working directory, OFICINA_* environment variables and command-line
flags.

Keys: data_dir, log.level, log.file, log.max_size_mb, log.max_backups,
ui.color, shell.watch. Environment variables replace '.' with '_', for
example OFICINA_LOG_LEVEL=debug.`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective settings as TOML",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "Write a config file with the default settings",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		defaults := config.Default()
		if cmd.Root().PersistentFlags().Changed("data-dir") {
			defaults.DataDir = cfg.DataDir
		}

		if err := config.Write(path, defaults, force); err != nil {
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", render.Pass("✓"), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
