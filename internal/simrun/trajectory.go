package simrun

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TrajectoryRow is one recorded simulation step, meant for later
// aggregation/plotting.
type TrajectoryRow struct {
	Step    int
	Result  string
	Elapsed time.Duration
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

// WriteTrajectoryCSV writes one row per recorded step to path: ensure
// the parent directory exists, open, write a header, write rows, flush.
func WriteTrajectoryCSV(path string, rows []TrajectoryRow) error {
	if dir := dirOf(path); dir != "" {
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

	if err := w.Write([]string{"step", "result", "elapsed_ms"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Step),
			row.Result,
			strconv.FormatFloat(float64(row.Elapsed.Microseconds())/1000.0, 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
