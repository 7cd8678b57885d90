package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
	"github.com/diillson/anthropic-cost-report-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes one row per day bucket plus a total row.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"Date", "Cost"})
	for _, bucket := range report.Buckets {
		writer.Write([]string{
			bucket.Date.Format("2006-01-02"),
			entity.FormatCents(bucket.AmountCents),
		})
	}
	writer.Write([]string{"Total", entity.FormatCents(report.TotalCents)})

	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// ExportToJSON writes the report structure with indentation.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportPayload(report)); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes a simple one-table PDF of the report.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "API Cost Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", report.Range.String()))
	pdf.Ln(10)

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Cost", "1", 1, "R", true, 0, "")

	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Arial", "", 10)
	for _, bucket := range report.Buckets {
		pdf.CellFormat(50, 7, bucket.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, entity.FormatCents(bucket.AmountCents), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, entity.FormatCents(report.TotalCents), "1", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// exportRow is the JSON export shape for one day.
type exportRow struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type exportReport struct {
	Period     string      `json:"period"`
	Rows       []exportRow `json:"rows"`
	TotalCents int64       `json:"total_cents"`
	Total      string      `json:"total"`
}

func exportPayload(report entity.Report) exportReport {
	rows := make([]exportRow, 0, len(report.Buckets))
	for _, bucket := range report.Buckets {
		rows = append(rows, exportRow{
			Date:        bucket.Date.Format("2006-01-02"),
			AmountCents: bucket.AmountCents,
			Amount:      entity.FormatCents(bucket.AmountCents),
		})
	}
	return exportReport{
		Period:     report.Range.String(),
		Rows:       rows,
		TotalCents: report.TotalCents,
		Total:      entity.FormatCents(report.TotalCents),
	}
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
