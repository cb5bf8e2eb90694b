package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders r in the named format.
func Write(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown report format %q (want text or json)", format)
	}
}

// WriteText prints the table, breakdown and coverage views with amounts
// right-aligned on the decimal point.
func WriteText(w io.Writer, r *Report) error {
	amounts := make([]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		amounts = append(amounts, displayRow(row))
	}
	amounts = append(amounts, Display(r.Total))
	col := newAmountColumn(append([]string{"MONTHLY"}, amounts...))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FREQUENCY\tKIND\tNAME\tCATEGORY\tACCOUNT\t%s\n", col.pad("MONTHLY"))
	for i, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Frequency, row.Kind, row.Name, orDash(row.Category), orDash(row.Account), col.pad(amounts[i]))
	}
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\n", col.pad(amounts[len(amounts)-1]))
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := writeLines(w, "BREAKDOWN", r.BreakdownLines()); err != nil {
		return err
	}
	return writeLines(w, "COVERAGE", r.CoverageLines())
}

func writeLines(w io.Writer, title string, lines []Line) error {
	amounts := make([]string, len(lines))
	for i, l := range lines {
		amounts[i] = Display(l.Amount)
	}
	col := newAmountColumn(amounts)

	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\n", l.Label, col.pad(amounts[i]))
	}
	return tw.Flush()
}

// amountColumn right-aligns amounts so that "1.00 " lines up with "(1.00)".
type amountColumn struct {
	width int
}

func newAmountColumn(cells []string) amountColumn {
	c := amountColumn{}
	for _, s := range cells {
		c.width = max(c.width, len(c.cell(s)))
	}
	return c
}

func (c amountColumn) cell(s string) string {
	if strings.HasSuffix(s, ")") {
		return s
	}
	return s + " "
}

func (c amountColumn) pad(s string) string {
	return fmt.Sprintf("%*s", c.width, c.cell(s))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type jsonRow struct {
	Frequency string `json:"frequency"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Account   string `json:"account,omitempty"`
	Monthly   string `json:"monthly"`
	Cents     int64  `json:"monthly_cents"`
}

type jsonLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Cents  int64  `json:"amount_cents"`
}

type jsonReport struct {
	Rows      []jsonRow  `json:"rows"`
	Total     string     `json:"total"`
	Cents     int64      `json:"total_cents"`
	Breakdown []jsonLine `json:"breakdown"`
	Coverage  []jsonLine `json:"coverage"`
}

// WriteJSON prints r as an indented JSON document with signed amounts.
func WriteJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		Rows:      make([]jsonRow, 0, len(r.Rows)),
		Total:     r.Total.String(),
		Cents:     r.Total.Cents(),
		Breakdown: toJSONLines(r.BreakdownLines()),
		Coverage:  toJSONLines(r.CoverageLines()),
	}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, jsonRow{
			Frequency: string(row.Frequency),
			Kind:      string(row.Kind),
			Name:      row.Name,
			Category:  row.Category,
			Account:   row.Account,
			Monthly:   row.Monthly.String(),
			Cents:     row.Monthly.Cents(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONLines(lines []Line) []jsonLine {
	out := make([]jsonLine, len(lines))
	for i, l := range lines {
		out[i] = jsonLine{Label: l.Label, Amount: l.Amount.String(), Cents: l.Amount.Cents()}
	}
	return out
}
