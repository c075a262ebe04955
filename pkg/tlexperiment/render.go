package tlexperiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/scylladb/termtables"
)

func (c *Comparison) Render() string {
	view := termtables.CreateTable()
	view.AddHeaders("Instance", "Solver", "Status", "Objective", "Total dev", "Mean dev", "Max dev", "Time", "Feasible")

	for _, row := range c.rows {
		view.AddRow(
			fmt.Sprintf("%s-%d", row.Size, row.Seed),
			row.Solver,
			string(row.Status),
			fmt.Sprintf("%.1f", row.Objective),
			fmt.Sprintf("%.1f", row.TotalDeviation),
			fmt.Sprintf("%.1f", row.MeanDeviation),
			fmt.Sprintf("%.1f", row.MaxDeviation),
			fmt.Sprintf("%.2fs", row.Seconds),
			fmt.Sprintf("%t", row.Feasible),
		)
	}

	return view.Render()
}

var csvHeader = []string{
	"size",
	"seed",
	"faculty",
	"activities",
	"solver",
	"status",
	"feasible",
	"time_sec",
	"total_deviation",
	"mean_deviation",
	"max_deviation",
	"objective",
}

func (c *Comparison) WriteCSV(output io.Writer) error {
	out := csv.NewWriter(output)

	if err := out.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range c.rows {
		if err := out.Write([]string{
			row.Size,
			strconv.FormatInt(row.Seed, 10),
			strconv.Itoa(row.Faculty),
			strconv.Itoa(row.Activities),
			row.Solver,
			string(row.Status),
			strconv.FormatBool(row.Feasible),
			fmt.Sprintf("%.3f", row.Seconds),
			fmt.Sprintf("%.2f", row.TotalDeviation),
			fmt.Sprintf("%.2f", row.MeanDeviation),
			fmt.Sprintf("%.2f", row.MaxDeviation),
			fmt.Sprintf("%.2f", row.Objective),
		}); err != nil {
			return err
		}
	}

	out.Flush()

	return out.Error()
}

// writes comparison_<timestamp>.csv under dir (usually the environment's
// exports dir) and returns the path
func (c *Comparison) SaveCSV(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("comparison_%s.csv", time.Now().Format("20060102_150405")))

	fd, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	if err := c.WriteCSV(fd); err != nil {
		return "", err
	}

	return path, nil
}
