package output_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/leaguegen/internal/adapters/output"
	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/mapper"
	"github.com/okian/leaguegen/internal/domain/random"
	"github.com/okian/leaguegen/internal/domain/types"
	"github.com/okian/leaguegen/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func sampleDocument() output.Document {
	squad := mapper.MustGenerationConfig(league.MetricSquadSize, league.DefaultSquadParams())
	g, err := league.NewGenerator(squad, mapper.MustGenerationConfig(league.MetricCapacity, league.DefaultStadiumParams()))
	if err != nil {
		panic(err)
	}
	res, err := g.Generate(league.Request{Name: "liga", Seed: 4, Reputations: []int{85, 60, 35}}, random.New(4))
	if err != nil {
		panic(err)
	}
	res.Failures = append(res.Failures, &league.DataError{Index: 3, TeamID: "t3", Value: 9, Err: league.ErrSquadBelowFloor})
	issues := []validation.Issue{
		{Kind: validation.KindSquadBelowFloor, Severity: validation.SeverityError, Message: "squad of 9", Component: "team/3"},
		{Kind: validation.KindExpectationDeviation, Severity: validation.SeverityWarning, Message: "off by 6", Component: "team/1"},
	}
	return output.NewDocument(res, issues)
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := output.ParseFormat(" YAML ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, output.FormatYAML)

		_, err = output.ParseFormat("xml")
		So(errors.Is(err, output.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestWriteJSON(t *testing.T) {
	Convey("Given a generated document", t, func() {
		doc := sampleDocument()
		var buf bytes.Buffer
		So(output.Write(&buf, output.FormatJSON, doc, false), ShouldBeNil)

		Convey("Then the JSON carries teams, reports, failures and named issue kinds", func() {
			var parsed map[string]any
			So(json.Unmarshal(buf.Bytes(), &parsed), ShouldBeNil)
			lg := parsed["league"].(map[string]any)
			So(lg["name"], ShouldEqual, "liga")
			So(len(lg["teams"].([]any)), ShouldEqual, 3)
			So(parsed["squad_report"].(map[string]any)["metric"], ShouldEqual, league.MetricSquadSize)
			So(len(parsed["failures"].([]any)), ShouldEqual, 1)
			issue := parsed["issues"].([]any)[0].(map[string]any)
			So(issue["kind"], ShouldEqual, "squad_below_floor")
			So(issue["severity"], ShouldEqual, "error")
		})
	})
}

func TestWriteYAML(t *testing.T) {
	Convey("Given a generated document", t, func() {
		doc := sampleDocument()
		var buf bytes.Buffer
		So(output.Write(&buf, output.FormatYAML, doc, false), ShouldBeNil)

		Convey("Then the YAML parses back into the same teams", func() {
			var parsed struct {
				League struct {
					Name  string `yaml:"name"`
					Teams []struct {
						ID        string `yaml:"id"`
						SquadSize int    `yaml:"squad_size"`
					} `yaml:"teams"`
				} `yaml:"league"`
				Issues []struct {
					Kind string `yaml:"kind"`
				} `yaml:"issues"`
			}
			So(yaml.Unmarshal(buf.Bytes(), &parsed), ShouldBeNil)
			So(parsed.League.Name, ShouldEqual, "liga")
			So(len(parsed.League.Teams), ShouldEqual, 3)
			So(parsed.League.Teams[1].ID, ShouldEqual, doc.League.Teams[1].ID)
			So(parsed.League.Teams[1].SquadSize, ShouldEqual, doc.League.Teams[1].SquadSize)
			So(parsed.Issues[1].Kind, ShouldEqual, "expectation_deviation")
		})
	})
}

func TestWriteEngineAndCSV(t *testing.T) {
	Convey("Given a generated document", t, func() {
		doc := sampleDocument()

		Convey("When written for the engine", func() {
			var buf bytes.Buffer
			So(output.Write(&buf, output.FormatEngine, doc, false), ShouldBeNil)
			var h types.Handoff
			So(json.Unmarshal(buf.Bytes(), &h), ShouldBeNil)
			So(len(h.Teams), ShouldEqual, 3)
			So(h.Teams[0].TeamID, ShouldEqual, doc.League.Teams[0].ID)
			total := 0
			for _, team := range doc.League.Teams {
				total += team.SquadSize
			}
			So(len(h.Players), ShouldEqual, total)
		})

		Convey("When written as CSV", func() {
			var buf bytes.Buffer
			So(output.Write(&buf, output.FormatCSV, doc, false), ShouldBeNil)
			rows, err := csv.NewReader(&buf).ReadAll()
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 4)
			So(rows[0][0], ShouldEqual, "index")
			So(rows[1][1], ShouldEqual, doc.League.Teams[0].ID)
		})
	})
}

func TestWriteSummary(t *testing.T) {
	Convey("Given a generated document", t, func() {
		doc := sampleDocument()
		var buf bytes.Buffer
		So(output.Write(&buf, output.FormatTable, doc, false), ShouldBeNil)
		out := buf.String()

		Convey("Then the summary names the league, reports and every finding", func() {
			So(out, ShouldContainSubstring, "League liga (seed 4): 3 teams built, 1 dropped")
			So(strings.ToUpper(out), ShouldContainSubstring, "REPUTATION")
			So(out, ShouldContainSubstring, "squad_size: total")
			So(out, ShouldContainSubstring, "stadium_capacity: total")
			So(out, ShouldContainSubstring, "dropped team/3")
			So(out, ShouldContainSubstring, "error team/3 [squad_below_floor]: squad of 9")
			So(out, ShouldContainSubstring, "warning team/1 [expectation_deviation]: off by 6")
		})
	})

	Convey("Given an unknown format", t, func() {
		err := output.Write(&bytes.Buffer{}, output.Format("xml"), output.Document{}, false)
		So(errors.Is(err, output.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestWriteAll(t *testing.T) {
	Convey("Given two documents", t, func() {
		docs := []output.Document{sampleDocument(), sampleDocument()}

		Convey("When written as JSON", func() {
			var buf bytes.Buffer
			So(output.WriteAll(&buf, output.FormatJSON, docs, false), ShouldBeNil)

			Convey("Then a single list is encoded", func() {
				var parsed []map[string]any
				So(json.Unmarshal(buf.Bytes(), &parsed), ShouldBeNil)
				So(len(parsed), ShouldEqual, 2)
			})
		})

		Convey("When written for the engine", func() {
			var buf bytes.Buffer
			So(output.WriteAll(&buf, output.FormatEngine, docs, false), ShouldBeNil)
			var handoffs []types.Handoff
			So(json.Unmarshal(buf.Bytes(), &handoffs), ShouldBeNil)
			So(len(handoffs), ShouldEqual, 2)
		})

		Convey("When written as tables", func() {
			var buf bytes.Buffer
			So(output.WriteAll(&buf, output.FormatTable, docs, false), ShouldBeNil)
			So(strings.Count(buf.String(), "League liga (seed 4)"), ShouldEqual, 2)
		})
	})
}
