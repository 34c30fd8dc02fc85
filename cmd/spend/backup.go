package main

import (
	"context"
	"errors"

	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/config"
	"github.com/anoushkasinn/Spend.Sense/internal/storage"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "backup <path>",
		Short:   "Copy the database to a file",
		Example: "  spend backup ~/spend-2024-03.db",
		Args:    cobra.ExactArgs(1),
		RunE: readOnly(func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			dest := config.ExpandPath(args[0])
			err := a.store.Backup(ctx, dest)
			if errors.Is(err, storage.ErrBackupExists) {
				return common.NewUserError(dest+" already exists; choose another name", err)
			}
			if err != nil {
				return err
			}
			a.printf("%s Backed up to %s\n", cli.SuccessStyle.Render(cli.SuccessIcon), dest)
			return nil
		}),
	}
}
