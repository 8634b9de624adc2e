package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV сохраняет записи прогона в CSV-файл, создавая каталоги
// по мере необходимости.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "nodes", "edges", "scenarios", "runs",
		"success_rate",
		"cost_best", "cost_mean", "cost_std",
		"time_best_ms", "time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Nodes),
			itoa(r.Edges),
			itoa(r.Scenarios),
			itoa(r.Runs),

			ftoa(r.SuccessRate),

			ftoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
