package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var standalone = map[string]string{"standalone": "true"}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Сохранить учетные данные Siigo",
	Long: `Запрашивает адрес API, client id и client secret Siigo и сохраняет их
в ~/.siigosync/config.yaml (или в файл из --config).`,
	Args:        cobra.NoArgs,
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "=== Настройка siigosync ===")

		baseURL, err := prompt(in, out, "Адрес API Siigo", viper.GetString("SIIGO_BASE_URL"))
		if err != nil {
			return err
		}
		clientID, err := prompt(in, out, "Client ID", viper.GetString("SIIGO_CLIENT_ID"))
		if err != nil {
			return err
		}
		partnerID, err := prompt(in, out, "Partner ID", viper.GetString("SIIGO_PARTNER_ID"))
		if err != nil {
			return err
		}

		fmt.Fprint(out, "Client secret: ")
		secret, err := readSecret(in)
		if err != nil {
			return fmt.Errorf("ошибка чтения секрета: %w", err)
		}
		fmt.Fprintln(out)
		if secret == "" {
			secret = viper.GetString("SIIGO_CLIENT_SECRET")
		}

		path, err := writeConfig(map[string]string{
			"siigo_base_url":      baseURL,
			"siigo_client_id":     clientID,
			"siigo_client_secret": secret,
			"siigo_partner_id":    partnerID,
		})
		if err != nil {
			return err
		}

		okColor.Fprintf(out, "✓ Конфигурация сохранена в %s\n", path)
		return nil
	},
}

var hashTokenCmd = &cobra.Command{
	Use:         "hash-token",
	Short:       "Получить bcrypt хеш API ключа для API_TOKEN_HASH",
	Args:        cobra.NoArgs,
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprint(cmd.ErrOrStderr(), "API ключ: ")
		token, err := readSecret(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return fmt.Errorf("ошибка чтения ключа: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr())

		if len(token) < 16 {
			return fmt.Errorf("ключ должен содержать минимум 16 символов")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("ошибка хеширования: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func prompt(in *bufio.Reader, out io.Writer, label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}

	if line = strings.TrimSpace(line); line == "" {
		return current, nil
	}
	return line, nil
}

// readSecret читает без эха с терминала, иначе строку из in
func readSecret(in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func writeConfig(values map[string]string) (string, error) {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ошибка создания директории: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	}

	for k, val := range values {
		if val != "" {
			v.Set(k, val)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("ошибка записи конфигурации: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return "", fmt.Errorf("ошибка установки прав: %w", err)
	}

	return path, nil
}
