// Package ledger reads the manually maintained trade log. The file is an
// append-only table of buy transactions; nothing here ever writes it.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"MarketCompass/internal/model"
)

var requiredColumns = []string{"Ticker", "Shares", "Cost_CNY", "Date"}

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Load reads positions from a CSV trade log. A missing required column or
// an unparsable row is reported immediately so the run aborts before any
// price fetch is attempted.
func Load(path string) ([]model.Position, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read trade log header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("trade log missing required column %q", name)
		}
	}

	var positions []model.Position
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read trade log line %d: %w", line, err)
		}

		pos, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("trade log line %d: %w", line, err)
		}
		positions = append(positions, pos)
	}

	if len(positions) == 0 {
		return nil, fmt.Errorf("trade log %s has no positions", path)
	}
	return positions, nil
}

func parseRecord(record []string, cols map[string]int) (model.Position, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ticker := field("Ticker")
	if ticker == "" {
		return model.Position{}, fmt.Errorf("empty Ticker")
	}

	shares, err := strconv.ParseFloat(field("Shares"), 64)
	if err != nil {
		return model.Position{}, fmt.Errorf("parse Shares: %w", err)
	}
	cost, err := strconv.ParseFloat(field("Cost_CNY"), 64)
	if err != nil {
		return model.Position{}, fmt.Errorf("parse Cost_CNY: %w", err)
	}

	date, err := parseDate(field("Date"))
	if err != nil {
		return model.Position{}, err
	}

	return model.Position{Ticker: ticker, Shares: shares, CostCNY: cost, Date: date}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse Date %q: unrecognized format", s)
}
