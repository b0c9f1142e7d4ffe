package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventFile string

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "События заказов",
}

var orderApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Применить событие заказа из файла",
	Long: `Передает событие заказа обработчикам по его статусу:
processing - счет, completed - списание, refunded - возврат остатков.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		events, err := readEvents(eventFile)
		if err != nil {
			return err
		}
		if len(events) != 1 {
			return fmt.Errorf("ожидается одно событие заказа, получено %d", len(events))
		}

		event := events[0]
		if err := event.Validate(); err != nil {
			return fmt.Errorf("событие заказа %q: %w", event.ID, err)
		}

		outcomes, err := run.ApplyOrder(cmd.Context(), event)
		return printOutcomes(cmd.OutOrStdout(), outcomes, err)
	},
}

func init() {
	orderApplyCmd.Flags().StringVarP(&eventFile, "file", "f", "", "JSON файл с событием заказа")
	_ = orderApplyCmd.MarkFlagRequired("file")

	orderCmd.AddCommand(orderApplyCmd)
}
