package repository

import (
	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
