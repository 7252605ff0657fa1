package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/shell"
	"github.com/micaelyMelo/OficinaMecanica/internal/watch"
)

var shellCmd = &cobra.Command{
	Use:     "shell",
	GroupID: "records",
	Short:   "Open the interactive menu (default)",
	Long: `Open the numbered menu used at the shop counter.

Answers are read from stdin. On a terminal each question is a form; when
stdin is piped, one answer is read per line, so a session can be scripted.
With --watch (or shell.watch in the config) the menu reloads the data dir
when another process saves one of the record files.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{shellAnnotation: "true"},
	RunE:        runShell,
}

func init() {
	shellCmd.Flags().Bool("watch", false, "Reload the data dir when another process changes it")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchDir := cfg.Shell.Watch
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		watchDir, _ = cmd.Flags().GetBool("watch")
	}

	out := cmd.OutOrStdout()
	opts := []shell.Option{shell.WithLogger(logger)}

	var watcher *watch.Watcher
	if watchDir {
		w, err := newDataDirWatcher()
		if err != nil {
			logger.Warn("not watching data dir", zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), render.Warn(fmt.Sprintf("Warning: not watching data dir: %v", err)))
		} else {
			watcher = w
			opts = append(opts, shell.WithChanges(w))
		}
	}

	sh := shell.New(store, shell.NewPrompter(cmd.InOrStdin(), out), out, render, opts...)
	sh.PrintLoadReport(loadReport)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if watcher != nil {
		g.Go(func() error { return watcher.Run(runCtx) })
	}
	g.Go(func() error {
		defer cancel()
		return sh.Run(runCtx)
	})
	return g.Wait()
}

func newDataDirWatcher() (*watch.Watcher, error) {
	if err := os.MkdirAll(store.Dir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return watch.New(store.Dir(), []string{schema.ClientsFile, schema.VehiclesFile, schema.OrdersFile}, logger)
}
