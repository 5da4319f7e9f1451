package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/leaguegen/internal/domain/types"
)

// Format selects how a Document is written.
type Format string

// Supported formats.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatEngine Format = "engine"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatEngine}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write dispatches on format. FormatEngine writes the flat handoff records
// as JSON; FormatCSV writes one row per team.
func Write(w io.Writer, format Format, doc Document, useColors bool) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatEngine:
		return WriteJSON(w, types.FromLeague(doc.League))
	case FormatCSV:
		return WriteCSV(w, doc)
	case FormatTable:
		return WriteSummary(w, doc, useColors)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML encodes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

var csvHeader = []string{
	"index", "team_id", "reputation", "squad_size",
	"goalkeepers", "defenders", "midfielders", "forwards", "stadium_capacity",
}

// WriteCSV writes one row per built team.
func WriteCSV(w io.Writer, doc Document) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range doc.League.Teams {
		row := []string{
			strconv.Itoa(t.Index),
			t.ID,
			strconv.Itoa(t.Reputation),
			strconv.Itoa(t.SquadSize),
			strconv.Itoa(t.Positions.Goalkeepers),
			strconv.Itoa(t.Positions.Defenders),
			strconv.Itoa(t.Positions.Midfielders),
			strconv.Itoa(t.Positions.Forwards),
			strconv.Itoa(t.Stadium.Capacity),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteAll writes several leagues. Structured formats encode one list;
// table and CSV write each league in turn.
func WriteAll(w io.Writer, format Format, docs []Document, useColors bool) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, docs)
	case FormatYAML:
		return WriteYAML(w, docs)
	case FormatEngine:
		handoffs := make([]types.Handoff, 0, len(docs))
		for _, doc := range docs {
			handoffs = append(handoffs, types.FromLeague(doc.League))
		}
		return WriteJSON(w, handoffs)
	}
	for i, doc := range docs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Write(w, format, doc, useColors); err != nil {
			return err
		}
	}
	return nil
}
