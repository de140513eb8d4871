package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/config"
	"github.com/alwaysmad/bookkeeper/internal/storage"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [dest]",
		Short: "Copy the database to a backup file",
		Long: `Write a consistent copy of the database. Without a destination the copy is
placed next to the database with a timestamp suffix. An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dest string
			if len(args) == 1 {
				dest = args[0]
			}
			return runBackup(cmd.Context(), appConfig, cmd.OutOrStdout(), dest, time.Now())
		},
	}
}

func backupPath(dbPath string, now time.Time) string {
	return config.ExpandPath(dbPath) + ".backup-" + now.Format("20060102-150405")
}

func runBackup(ctx context.Context, cfg config.Config, out io.Writer, dest string, now time.Time) error {
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if dest == "" {
		dest = backupPath(store.Path(), now)
	}
	dest = config.ExpandPath(dest)

	if err := store.Backup(ctx, dest); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, cli.FormatSuccess("Backed up to "+dest))
	return err
}
