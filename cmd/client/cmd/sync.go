package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"siigosync/internal/domain/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Сверка каталога с Siigo",
	Long: `Ручной запуск проходов сверки.

  inventory  отправить локальные остатки в Siigo
  pull       создать локально товары, которые есть только в Siigo
  push       создать в Siigo товары, которые есть только локально`,
}

func passCmd(use, short string, pass func(r runner, ctx context.Context) (*sync.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pass(run, cmd.Context())
			return printResult(cmd.OutOrStdout(), res, err)
		},
	}
}

func init() {
	syncCmd.AddCommand(
		passCmd("inventory", "Отправить остатки в Siigo", runner.SyncInventory),
		passCmd("pull", "Загрузить новые товары из Siigo", runner.PullProducts),
		passCmd("push", "Выгрузить новые товары в Siigo", runner.PushProducts),
	)
}
