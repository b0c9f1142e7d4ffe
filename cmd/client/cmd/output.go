package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"siigosync/internal/domain/order"
	"siigosync/internal/domain/sync"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.FgHiBlack)
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult выводит итог прохода. Ошибка прохода печатается вместе с итогом
// и возвращается вызывающему.
func printResult(w io.Writer, res *sync.Result, runErr error) error {
	if jsonOutput {
		if res != nil {
			if err := printJSON(w, res); err != nil {
				return err
			}
		}
		return runErr
	}

	if res == nil {
		return runErr
	}

	if res.Success {
		okColor.Fprintf(w, "✓ %s\n", res.Operation)
	} else {
		failColor.Fprintf(w, "✗ %s\n", res.Operation)
	}

	fmt.Fprintf(w, "  %s\n", res.Message)
	fmt.Fprintf(w, "  Обработано: %d, пропущено: %d, ошибок: %d\n", res.Count, res.Skipped, res.Failed)
	dimColor.Fprintf(w, "  run %s, %v\n", res.RunID, res.Duration.Round(time.Millisecond))

	for _, e := range res.Errors {
		warnColor.Fprintf(w, "  - %s: %s\n", e.Key, e.Error)
	}

	return runErr
}

func printOutcomes(w io.Writer, outcomes []order.Outcome, runErr error) error {
	if jsonOutput {
		if err := printJSON(w, outcomes); err != nil {
			return err
		}
		return runErr
	}

	if len(outcomes) == 0 && runErr == nil {
		dimColor.Fprintln(w, "Обработчики не выполнялись")
	}

	for _, o := range outcomes {
		if o.Failed > 0 {
			warnColor.Fprintf(w, "! %s: %s\n", o.Handler, o.Message)
			continue
		}
		okColor.Fprintf(w, "✓ %s: %s\n", o.Handler, o.Message)
	}

	return runErr
}
