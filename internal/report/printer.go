package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/util"
)

// Printer renders a dashboard as headed text blocks: each section shows its table followed by
// its own insight or the inline insight error.
type Printer struct {
	w     io.Writer
	brand string
	color bool
}

func NewPrinter(w io.Writer, brand string, color bool) *Printer {
	return &Printer{w: w, brand: brand, color: color}
}

func (p *Printer) style(style, text string) string {
	if !p.color {
		return text
	}
	return style + text + reset
}

func (p *Printer) Print(dash *service.Dashboard) error {
	title := fmt.Sprintf("📊 %s Media Intelligence Dashboard", p.brand)
	fmt.Fprintln(p.w, p.style(headerStyle, title))
	fmt.Fprintln(p.w, p.style(dimStyle, strings.Repeat("=", len([]rune(title)))))
	fmt.Fprintf(p.w, "%s %s .. %s\n", p.style(metaStyle, "Period:"),
		util.FormatDate(dash.Criteria.StartDate), util.FormatDate(dash.Criteria.EndDate))
	platforms := strings.Join(dash.Criteria.Platforms, ", ")
	if platforms == "" {
		platforms = "(none)"
	}
	fmt.Fprintf(p.w, "%s %s\n", p.style(metaStyle, "Platforms:"), platforms)
	fmt.Fprintf(p.w, "%s %s\n", p.style(metaStyle, "Records:"), p.style(countStyle, fmt.Sprintf("%d", dash.RecordCount)))

	for _, section := range dash.Sections {
		fmt.Fprintln(p.w)
		if err := p.printSection(section); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printSection(s service.Section) error {
	fmt.Fprintf(p.w, "▼ %s\n", p.style(headerStyle, s.Definition.Section))
	fmt.Fprintf(p.w, "  %s\n", p.style(dimStyle, fmt.Sprintf("chart: %s", describeChart(s))))

	if s.Table.IsEmpty() {
		fmt.Fprintf(p.w, "  %s\n", p.style(warningStyle, "No data for the selected filters."))
	} else {
		tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\n", strings.ToUpper(s.Table.KeyColumn), strings.ToUpper(s.Table.ValueColumn))
		for _, row := range s.Table.Rows {
			fmt.Fprintf(tw, "  %s\t%d\n", row.Key, row.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	switch {
	case s.Insight != nil:
		label := "🔍 Insight"
		if s.Insight.Cached {
			label += " (cached)"
		}
		fmt.Fprintf(p.w, "  %s\n", p.style(headerStyle, label))
		for _, line := range strings.Split(strings.TrimSpace(s.Insight.Text), "\n") {
			fmt.Fprintf(p.w, "    %s\n", line)
		}
	case s.InsightErr != nil:
		fmt.Fprintf(p.w, "  %s\n", p.style(errorStyle, s.InsightErr.Message()))
	}
	return nil
}

func describeChart(s service.Section) string {
	desc := s.Chart.Type
	if s.Chart.Orientation == "h" {
		desc = "horizontal " + desc
	}
	if s.Chart.Hole > 0 {
		desc = "donut " + desc
	}
	return fmt.Sprintf("%s of %s by %s", desc, s.Chart.YField, s.Chart.XField)
}
