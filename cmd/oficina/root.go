package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/config"
	"github.com/micaelyMelo/OficinaMecanica/internal/logging"
	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
	"github.com/micaelyMelo/OficinaMecanica/internal/ui"
)

// Command annotations read by setup.
const (
	// noStoreAnnotation marks commands that never open the data dir.
	noStoreAnnotation = "oficina/no-store"
	// shellAnnotation marks commands that report load problems themselves.
	shellAnnotation = "oficina/shell"
)

// State shared by every command of one invocation, set up by setup.
var (
	cfg        config.Config
	logger     = zap.NewNop()
	closeLog   = func() error { return nil }
	store      *shop.Store
	loadReport *shop.LoadReport
	render     *ui.Renderer
)

var rootCmd = &cobra.Command{
	Use:   "oficina",
	Short: "Clients, vehicles and service orders of a repair shop",
	Long: `oficina keeps the records of a small vehicle-repair shop: clients, the
vehicles they own and the service orders opened against those vehicles.

Records live in three text files inside the data dir (clientes.txt,
veiculos.txt and ordens.txt). Run without a subcommand to open the
interactive menu.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runShell,
	Annotations:        map[string]string{shellAnnotation: "true"},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "records", Title: "Records:"},
		&cobra.Group{ID: "tools", Title: "Tools:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.String("data-dir", "", "Directory holding the record files (default \".\")")
	pf.String("config", "", "Config file (default ./oficina.toml or ~/.config/oficina/oficina.toml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write JSON logs to this file instead of stderr")
	pf.Bool("no-color", false, "Disable colored output")
}

// setup loads the config, starts logging and opens the data dir.
func setup(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()

	v := viper.New()
	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"log.level": "log-level",
		"log.file":  "log-file",
	} {
		if f := pf.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	configFile, _ := pf.GetString("config")
	loaded, err := config.Load(v, config.Options{ConfigFile: configFile})
	if err != nil {
		return err
	}
	cfg = loaded
	if noColor, _ := pf.GetBool("no-color"); noColor {
		cfg.UI.Color = false
	}

	logCfg := cfg.Logging()
	logCfg.Console = cmd.ErrOrStderr()
	logger, closeLog = logging.New(logCfg)
	render = ui.New(cmd.OutOrStdout(), cfg.UI.Color)

	if cmd.Annotations[noStoreAnnotation] != "" {
		return nil
	}

	store, loadReport = shop.Open(cfg.DataDir, logger)
	logger.Debug("data dir opened", zap.String("dir", cfg.DataDir), zap.String("command", cmd.CommandPath()))
	if cmd.Annotations[shellAnnotation] == "" {
		warnLoadReport(cmd.ErrOrStderr())
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	_ = logger.Sync()
	return closeLog()
}

// warnLoadReport prints what opening the data dir skipped or repaired.
// The interactive shell prints its own version of this report.
func warnLoadReport(w io.Writer) {
	if loadReport == nil || loadReport.Clean() {
		return
	}
	warn := ui.New(w, cfg.UI.Color)
	for name, err := range loadReport.Failed {
		fmt.Fprintln(w, warn.Warn(fmt.Sprintf("Warning: could not read %s: %v", name, err)))
	}
	for _, le := range loadReport.Skipped {
		fmt.Fprintln(w, warn.Warn(fmt.Sprintf("Warning: skipped %v", le)))
	}
	for _, plate := range loadReport.OrphanedVehicles {
		fmt.Fprintln(w, warn.Warn(fmt.Sprintf("Warning: vehicle %s has no registered owner", plate)))
	}
	for _, id := range loadReport.DetachedOrders {
		fmt.Fprintln(w, warn.Warn(fmt.Sprintf("Warning: order %d has no registered vehicle", id)))
	}
}

// persisted turns a persistence failure of a one-shot command into an
// error: the in-memory change dies with the process.
func persisted(err error) error {
	if err == nil {
		return nil
	}
	if shop.IsPersistenceError(err) {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return err
}
