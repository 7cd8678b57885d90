package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
)

func sampleReport(t *testing.T) entity.Report {
	t.Helper()
	start := time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)
	report := entity.Report{
		Range: entity.DateRange{Start: start, End: start.AddDate(0, 0, 1)},
		Buckets: []entity.CostBucket{
			{Date: start, AmountCents: 467},
			{Date: start.AddDate(0, 0, 1), AmountCents: 280},
		},
	}
	report.TotalCents = report.Total()
	return report
}

func TestExportToCSV(t *testing.T) {
	repo := NewExportRepository()
	path, err := repo.ExportToCSV(sampleReport(t), "costs", t.TempDir())
	if err != nil {
		t.Fatalf("ExportToCSV() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening exported file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}

	want := [][]string{
		{"Date", "Cost"},
		{"2026-01-29", "$4.67"},
		{"2026-01-30", "$2.80"},
		{"Total", "$7.47"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i][0] != want[i][0] || records[i][1] != want[i][1] {
			t.Errorf("record %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestExportToJSON(t *testing.T) {
	repo := NewExportRepository()
	path, err := repo.ExportToJSON(sampleReport(t), "costs", t.TempDir())
	if err != nil {
		t.Fatalf("ExportToJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}

	var got exportReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if got.Period != "2026-01-29 to 2026-01-30" {
		t.Errorf("Period = %q", got.Period)
	}
	if got.TotalCents != 747 || got.Total != "$7.47" {
		t.Errorf("total = %d / %q, want 747 / $7.47", got.TotalCents, got.Total)
	}
	if len(got.Rows) != 2 || got.Rows[0].Amount != "$4.67" {
		t.Errorf("Rows = %+v", got.Rows)
	}
}

func TestExportToPDF(t *testing.T) {
	repo := NewExportRepository()
	path, err := repo.ExportToPDF(sampleReport(t), "costs", t.TempDir())
	if err != nil {
		t.Fatalf("ExportToPDF() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("exported file does not look like a PDF")
	}
}

func TestGenerateFilenameUsesExtensionAndDir(t *testing.T) {
	dir := t.TempDir()
	path, err := generateFilename("report", dir, "csv")
	if err != nil {
		t.Fatalf("generateFilename() error = %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q not under %q", path, dir)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Errorf("path %q does not end in .csv", path)
	}
}
