package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"siigosync/internal/app"
	"siigosync/internal/app/client"
	"siigosync/internal/config"
	"siigosync/internal/domain/order"
	"siigosync/internal/domain/sync"
	"siigosync/internal/utils/logger"
)

const configDirName = ".siigosync"

// runner выполняет проходы синхронизации локально или через сервер
type runner interface {
	SyncInventory(ctx context.Context) (*sync.Result, error)
	PullProducts(ctx context.Context) (*sync.Result, error)
	PushProducts(ctx context.Context) (*sync.Result, error)
	ResyncInvoices(ctx context.Context, events []order.Event) (*sync.Result, error)
	ApplyOrder(ctx context.Context, event order.Event) ([]order.Outcome, error)
}

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string
	apiToken   string

	log     *slog.Logger
	run     runner
	closeFn func() error
)

var rootCmd = &cobra.Command{
	Use:   "siigosync",
	Short: "siigosync - синхронизация каталога WooCommerce с Siigo",
	Long: `siigosync сверяет каталог магазина с Siigo: создает недостающие товары
с обеих сторон, отправляет остатки и выставляет счета по заказам.

Команды выполняются локально с настройками из конфигурации или,
с флагом --server, на запущенном сервисе siigosync.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// needsApp команды, которым не нужен клиент Siigo
func needsApp(cmd *cobra.Command) bool {
	return cmd.Annotations["standalone"] != "true"
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if err := readConfigFile(); err != nil {
		return fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	env := viper.GetString("APP_ENV")
	if debug {
		log = logger.New(env, "debug")
	} else {
		log = logger.New(env, viper.GetString("LOG_LEVEL"))
	}

	if !needsApp(cmd) {
		return nil
	}

	if serverURL != "" {
		token := apiToken
		if token == "" {
			token = viper.GetString("API_TOKEN")
		}
		run = client.NewHTTPClient(serverURL, token, log)
		closeFn = nil
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w. Выполните: siigosync configure", err)
	}

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}
	run = a
	closeFn = a.Close

	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if closeFn == nil {
		return nil
	}
	err := closeFn()
	closeFn = nil
	return err
}

func readConfigFile() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервиса siigosync")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "API ключ сервиса (по умолчанию API_TOKEN)")

	rootCmd.AddCommand(syncCmd, invoiceCmd, orderCmd, configureCmd, hashTokenCmd)
}
