package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/model"
	"github.com/okian/leaguegen/internal/domain/validation"
)

var summaryHeader = []string{"#", "Reputation", "Squad", "GK", "DEF", "MID", "FWD", "Capacity", "Avg Skill", "Avg Age"}

// WriteSummary renders a team table, both metric reports and the issue list.
func WriteSummary(w io.Writer, doc Document, useColors bool) error {
	if _, err := fmt.Fprintf(w, "League %s (seed %d): %d teams built, %d dropped\n",
		doc.League.Name, doc.League.Seed, len(doc.League.Teams), len(doc.Failures)); err != nil {
		return err
	}

	if err := writeTeamTable(w, doc.League.Teams); err != nil {
		return err
	}
	for _, r := range []league.Report{doc.SquadReport, doc.CapacityReport} {
		if _, err := fmt.Fprintf(w, "%s: total %d, average %.1f, min %d, max %d, spread %d, stddev %.2f\n",
			r.Metric, r.Total, r.Average, r.Min, r.Max, r.Spread, r.StdDev); err != nil {
			return err
		}
	}

	red, yellow := fmt.Sprint, fmt.Sprint
	if useColors {
		red = color.New(color.FgRed, color.Bold).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	}
	for _, f := range doc.Failures {
		if _, err := fmt.Fprintf(w, "%s team/%d: %s\n", red("dropped"), f.Index, f.Reason); err != nil {
			return err
		}
	}
	for _, i := range doc.Issues {
		label := yellow(i.Severity.String())
		if i.Severity == validation.SeverityError {
			label = red(i.Severity.String())
		}
		if _, err := fmt.Fprintf(w, "%s %s [%s]: %s\n", label, i.Component, i.Kind, i.Message); err != nil {
			return err
		}
	}
	return nil
}

func writeTeamTable(w io.Writer, teams []model.Team) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(summaryHeader)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(teams))
	for _, t := range teams {
		skill, age := averages(t.Players)
		data = append(data, []string{
			strconv.Itoa(t.Index),
			strconv.Itoa(t.Reputation),
			strconv.Itoa(t.SquadSize),
			strconv.Itoa(t.Positions.Goalkeepers),
			strconv.Itoa(t.Positions.Defenders),
			strconv.Itoa(t.Positions.Midfielders),
			strconv.Itoa(t.Positions.Forwards),
			strconv.Itoa(t.Stadium.Capacity),
			fmt.Sprintf("%.1f", skill),
			fmt.Sprintf("%.1f", age),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func averages(players []model.Player) (skill, age float64) {
	if len(players) == 0 {
		return 0, 0
	}
	for _, p := range players {
		skill += float64(p.Skill)
		age += float64(p.Age)
	}
	n := float64(len(players))
	return skill / n, age / n
}
