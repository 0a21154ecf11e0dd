package parser

import (
	"fmt"
	"strconv"
	"strings"

	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/util"

	"github.com/rs/zerolog/log"
)

type RecordParser interface {
	Parse(row []string) (*model.Record, error)
	Columns() []string
}

type headerRecordParser struct {
	index   map[string]int
	columns []string
}

// NewHeaderRecordParser maps the known columns to their header positions.
// Unknown header names are ignored; the Date column is mandatory.
func NewHeaderRecordParser(header []string) (RecordParser, error) {
	p := &headerRecordParser{index: make(map[string]int)}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		for _, known := range model.KnownColumns {
			if strings.EqualFold(name, known) {
				if _, dup := p.index[known]; !dup {
					p.index[known] = i
				}
			}
		}
	}
	if _, ok := p.index[model.ColDate]; !ok {
		return nil, &model.SchemaError{Column: model.ColDate}
	}
	for _, known := range model.KnownColumns {
		if _, ok := p.index[known]; ok {
			p.columns = append(p.columns, known)
		}
	}
	return p, nil
}

func (p *headerRecordParser) Columns() []string {
	return p.columns
}

func (p *headerRecordParser) Parse(row []string) (*model.Record, error) {
	dateStr := p.field(row, model.ColDate)
	if dateStr == "" {
		return nil, fmt.Errorf("empty %s value", model.ColDate)
	}
	ts, err := util.ParseTimeFlexible(dateStr)
	if err != nil {
		log.Debug().Str("value", dateStr).Msg("Date cell could not be parsed")
		return nil, fmt.Errorf("failed to parse %s: %w", model.ColDate, err)
	}

	var engagements int64
	if raw := p.field(row, model.ColEngagements); raw != "" {
		engagements, err = parseEngagements(raw)
		if err != nil {
			return nil, err
		}
	}

	return &model.Record{
		Date:        ts,
		Platform:    p.field(row, model.ColPlatform),
		Sentiment:   p.field(row, model.ColSentiment),
		MediaType:   p.field(row, model.ColMediaType),
		Location:    p.field(row, model.ColLocation),
		Engagements: engagements,
	}, nil
}

func (p *headerRecordParser) field(row []string, column string) string {
	i, ok := p.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseEngagements accepts integers, optionally with thousands separators or a ".0" suffix
// as spreadsheet exports write them.
func parseEngagements(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimSuffix(cleaned, ".0")
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s %q: not an integer", model.ColEngagements, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("failed to parse %s %q: negative value", model.ColEngagements, raw)
	}
	return n, nil
}
