package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/pipeline"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statisticsCmd)
}

var statisticsCmd = &cobra.Command{
	Use:   "statistics",
	Short: "Prints counts of the stored auctions and the latest runs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.pipeline.Statistics(cmd.Context())
		if err != nil {
			return err
		}
		renderStatistics(os.Stdout, stats)
		return nil
	},
}

type countRow struct {
	label string
	count int
}

// sortedCounts orders rows by count, then label.
func sortedCounts(rows []countRow) []countRow {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})
	return rows
}

func renderCounts(w io.Writer, title, header string, rows []countRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{header, "Count"})
	for _, row := range sortedCounts(rows) {
		t.AppendRow(table.Row{row.label, row.count})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderStatistics(w io.Writer, stats pipeline.Statistics) {
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendRows([]table.Row{
		{"Auctions", stats.Auctions},
		{"Assets", stats.Assets},
	})
	summary.SetStyle(table.StyleRounded)
	summary.Render()

	var rows []countRow
	for state, n := range stats.ByState {
		rows = append(rows, countRow{label: state.String(), count: n})
	}
	renderCounts(w, "Auctions by state", "State", rows)

	rows = nil
	for kind, n := range stats.ByKind {
		rows = append(rows, countRow{label: kind.String(), count: n})
	}
	renderCounts(w, "Auctions by kind", "Kind", rows)

	rows = nil
	for key, n := range stats.ByCategory {
		rows = append(rows, countRow{label: fmt.Sprintf("%s / %s", key.Kind, key.Category), count: n})
	}
	renderCounts(w, "Assets by category", "Category", rows)

	rows = nil
	for province, n := range stats.ByProvince {
		label := province.String()
		if province == auction.ProvinceUnknown {
			label = "?"
		}
		rows = append(rows, countRow{label: label, count: n})
	}
	renderCounts(w, "Properties by province", "Province", rows)

	months := table.NewWriter()
	months.SetOutputMirror(w)
	months.SetTitle("Ongoing auctions by end month")
	months.AppendHeader(table.Row{"Month", "Count"})
	for _, m := range stats.EndMonths {
		months.AppendRow(table.Row{m.Month.Format("2006-01"), m.Count})
	}
	months.SetStyle(table.StyleRounded)
	months.Render()

	runs := table.NewWriter()
	runs.SetOutputMirror(w)
	runs.SetTitle("Latest runs")
	runs.AppendHeader(table.Row{"ID", "Pass", "Started", "Took", "OK", "Err", "Skipped", "Total"})
	for _, r := range stats.Runs {
		runs.AppendRow(table.Row{
			r.ID,
			r.Pass,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.OK,
			r.Failed,
			r.Skipped,
			r.Total,
		})
	}
	runs.SetStyle(table.StyleRounded)
	runs.Render()
}
