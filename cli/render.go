package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/twitter/lineup/roster"
	"github.com/twitter/lineup/search"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		String()
}

// renderRoster draws one roster: a row per pick and a totals row.
func renderRoster(rank int, r *roster.Roster) string {
	rows := make([][]string, 0, roster.NumSlots+1)
	for _, p := range r.Picks {
		c := p.Candidate
		rows = append(rows, []string{
			p.Slot.String(),
			c.Name,
			c.ID,
			c.Team,
			c.EligibleSlots.String(),
			strconv.Itoa(c.Salary),
			strconv.FormatFloat(c.ProjectedScore, 'f', 2, 64),
		})
	}
	rows = append(rows, []string{"", "Total", "", "", "",
		strconv.Itoa(r.TotalSalary), strconv.FormatFloat(r.TotalScore, 'f', 2, 64)})

	title := titleStyle.Render(fmt.Sprintf("#%d  %.2f points  $%d", rank, r.TotalScore, r.TotalSalary))
	return lipgloss.JoinVertical(lipgloss.Left, title,
		renderTable([]string{"SLOT", "NAME", "ID", "TEAM", "ELIGIBLE", "SALARY", "PROJECTION"}, rows))
}

// renderResult draws every roster of res followed by a one line summary.
func renderResult(res *search.Result) string {
	var parts []string
	for i := range res.Rosters {
		parts = append(parts, renderRoster(i+1, &res.Rosters[i]))
	}
	s := res.Summary
	parts = append(parts, mutedStyle.Render(fmt.Sprintf(
		"run %s: %s, %d rosters kept of %d found, %d candidates, %d workers, %d nodes, pruned %d/%d/%d (reserve/score/spend), %s",
		res.RunID, res.Status, len(res.Rosters), s.Search.Emitted, s.PoolSize, s.Workers, s.Search.NodesVisited,
		s.Search.PrunedReserve, s.Search.PrunedScore, s.Search.PrunedSpend, s.Elapsed)))
	return strings.Join(parts, "\n\n")
}
