// Copyright (c) 2024 HNSW Contributors
//
// Permission is hereby granted, free of charge, to any person
// obtaining a copy of this software and associated documentation
// files (the "Software"), to deal in the Software without
// restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following
// conditions:
//
// The above copyright notice and this permission notice shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package bench

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#509EE3"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#949AAB"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	recallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#88BF4D"))
)

// PrintSummary renders cfg's dataset description and build stats,
// followed by one row per configured efSearch value, replacing the
// C++ original's manual iomanip column padding with lipgloss styling.
func (b *Benchmark) PrintSummary() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(b.Dataset.String()))
	sb.WriteByte('\n')

	build := b.BuildStats()
	fmt.Fprintf(&sb, "%s avg=%s min=%s max=%s over %d runs\n\n",
		labelStyle.Render("Build:"), build.Avg, build.Min, build.Max, b.RunsCount)

	efs := make([]int, 0, len(b.queryRuns))
	for ef := range b.queryRuns {
		efs = append(efs, ef)
	}
	sort.Ints(efs)

	stats := b.QueryStats()
	rows := [][]string{{"efSearch", "avg recall", "avg elapsed", "min elapsed", "max elapsed"}}
	for _, ef := range efs {
		qs := stats[ef]
		rows = append(rows, []string{
			fmt.Sprintf("%d", ef),
			recallStyle.Render(fmt.Sprintf("%.3f", qs.AvgRecall)),
			qs.Avg.String(),
			qs.Min.String(),
			qs.Max.String(),
		})
	}

	sb.WriteString(renderTable(rows))
	return sb.String()
}

// PrintSummary renders a single build's description followed by one row
// per query in rt.Rows, mirroring RecallTable::print.
func (rt *RecallTable) PrintSummary() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(rt.Cfg.Dataset.String()))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s\n", labelStyle.Render(rt.IndexStr))
	fmt.Fprintf(&sb, "%s %s\n\n", labelStyle.Render("Build time:"), rt.BuildElapsed)

	rows := [][]string{{"efSearch", "recall", "elapsed"}}
	for _, row := range rt.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", row.EfSearch),
			recallStyle.Render(fmt.Sprintf("%.3f", row.Recall)),
			row.Elapsed.String(),
		})
	}

	sb.WriteString(renderTable(rows))
	return sb.String()
}

// renderTable lays out rows (first row treated as a header) as
// fixed-width, lipgloss-padded columns.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for r, row := range rows {
		for i, cell := range row {
			style := cellStyle.Width(widths[i])
			if r == 0 {
				style = style.Bold(true)
			}
			sb.WriteString(style.Render(cell))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
