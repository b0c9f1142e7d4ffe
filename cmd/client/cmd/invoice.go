package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"siigosync/internal/domain/order"
)

var ordersFile string

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Счета в Siigo",
}

var invoiceResyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Повторно выставить счета по заказам из файла",
	Long: `Читает JSON массив заказов и выставляет счета по тем,
для которых счет еще не сохранен.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		events, err := readEvents(ordersFile)
		if err != nil {
			return err
		}

		res, err := run.ResyncInvoices(cmd.Context(), events)
		return printResult(cmd.OutOrStdout(), res, err)
	},
}

// readEvents принимает как массив заказов, так и один заказ
func readEvents(path string) ([]order.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	var events []order.Event
	if err := json.Unmarshal(data, &events); err == nil {
		return events, nil
	}

	var single order.Event
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("некорректный JSON заказов: %w", err)
	}

	return []order.Event{single}, nil
}

func init() {
	invoiceResyncCmd.Flags().StringVarP(&ordersFile, "file", "f", "", "JSON файл с заказами")
	_ = invoiceResyncCmd.MarkFlagRequired("file")

	invoiceCmd.AddCommand(invoiceResyncCmd)
}
