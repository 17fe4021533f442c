package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/victorlai/deliverydesk/internal/repository"
)

// Service is a tiny façade over the customer repository that produces XLSX
// bytes for download. Headers use the localized column names so an exported
// workbook can be re-imported without edits.
type Service struct {
	repo   repository.CustomerRepository
	logger *slog.Logger
}

func NewService(repo repository.CustomerRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportCustomersXLSX returns a workbook with every customer, newest first.
func (s *Service) ExportCustomersXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"客戶代碼", "收貨人", "地址", "統編", "備註", "建立時間"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, c := range customers {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, c.CustomerCode)
		write(2, c.Recipient)
		write(3, c.Address)
		write(4, c.TaxID)
		write(5, c.Notes)
		if !c.CreatedAt.IsZero() {
			write(6, c.CreatedAt.Format("2006-01-02"))
		}
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 14) // code
	_ = f.SetColWidth(sheet, "B", "B", 16) // recipient
	_ = f.SetColWidth(sheet, "C", "C", 40) // address
	_ = f.SetColWidth(sheet, "D", "D", 14) // tax id
	_ = f.SetColWidth(sheet, "E", "E", 32) // notes
	_ = f.SetColWidth(sheet, "F", "F", 12) // created

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(customers),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
