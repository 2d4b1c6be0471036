package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write ledger: %v", err)
	}
	return path
}

func TestLoad_ValidLedger(t *testing.T) {
	path := writeLedger(t, strings.Join([]string{
		"Ticker,Shares,Cost_CNY,Date",
		"VOO,2.5,12000,2023-01-15",
		"QQQ,1,5000,2023/03/20",
		"VOO,1.5,8000,2023-06-10",
	}, "\n"))

	positions, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(positions))
	}
	p := positions[0]
	if p.Ticker != "VOO" || p.Shares != 2.5 || p.CostCNY != 12000 {
		t.Errorf("unexpected first position: %+v", p)
	}
	want := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	if !p.Date.Equal(want) {
		t.Errorf("date = %v, want %v", p.Date, want)
	}
	// Slash-separated date on line 3.
	if positions[1].Date.Month() != time.March {
		t.Errorf("slash date parsed as %v", positions[1].Date)
	}
}

func TestLoad_ExtraColumnsIgnored(t *testing.T) {
	path := writeLedger(t, strings.Join([]string{
		"Ticker,Shares,Cost_CNY,Date,Note",
		"VOO,1,7000,2023-01-01,first buy",
	}, "\n"))

	positions, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeLedger(t, strings.Join([]string{
		"Ticker,Shares,Date",
		"VOO,1,2023-01-01",
	}, "\n"))

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing Cost_CNY column")
	}
	if !strings.Contains(err.Error(), "Cost_CNY") {
		t.Errorf("error should name the missing column, got: %v", err)
	}
}

func TestLoad_BadRow(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad shares", "VOO,abc,7000,2023-01-01"},
		{"bad cost", "VOO,1,xx,2023-01-01"},
		{"bad date", "VOO,1,7000,someday"},
		{"empty ticker", ",1,7000,2023-01-01"},
	}
	for _, tt := range tests {
		path := writeLedger(t, "Ticker,Shares,Cost_CNY,Date\n"+tt.row)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoad_EmptyLedger(t *testing.T) {
	path := writeLedger(t, "Ticker,Shares,Cost_CNY,Date\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for ledger without positions")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
