package payroll

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twhr/payroll-backend-go/internal/domain/payroll"
)

// importNameColumn is the header of the key column of an import file.
const importNameColumn = "員工姓名"

// BatchImport applies a wide spreadsheet export to the month's draft:
// one row per employee, one column per salary item. Unmatched names
// and items are skipped and reported, never fatal; only a broken file
// aborts the run. All writes share one transaction.
func (s *payrollService) BatchImport(ctx context.Context, year, month int, file io.Reader) (payroll.ImportReport, error) {
	if err := validateYearMonth(year, month); err != nil {
		return payroll.ImportReport{}, err
	}

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return payroll.ImportReport{}, fmt.Errorf("read import file: %w", err)
	}
	if len(rows) < 2 {
		return payroll.ImportReport{}, payroll.ErrEmptyImport
	}

	header := rows[0]
	nameCol := -1
	for i, col := range header {
		if strings.TrimSpace(col) == importNameColumn {
			nameCol = i
			break
		}
	}
	if nameCol == -1 {
		return payroll.ImportReport{}, payroll.ErrMissingNameColumn
	}

	idsByName, err := s.employeeRepo.GetIDsByName(ctx)
	if err != nil {
		return payroll.ImportReport{}, fmt.Errorf("load employee names: %w", err)
	}
	itemsByName, err := s.payrollRepo.GetItemsByName(ctx)
	if err != nil {
		return payroll.ImportReport{}, fmt.Errorf("load item catalog: %w", err)
	}

	report := payroll.ImportReport{RunID: uuid.NewString()}
	skippedItems := make(map[string]bool)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows[1:] {
			if nameCol >= len(row) {
				continue
			}
			name := strings.TrimSpace(row[nameCol])
			if name == "" {
				continue
			}

			employeeID, ok := idsByName[name]
			if !ok {
				report.SkippedEmployees = append(report.SkippedEmployees, name)
				continue
			}

			record, err := s.payrollRepo.EnsureDraftRecord(ctx, employeeID, year, month)
			if err != nil {
				return fmt.Errorf("ensure record for %s: %w", name, err)
			}
			if record.IsFinal() {
				report.SkippedEmployees = append(report.SkippedEmployees, name)
				continue
			}

			for col, cell := range row {
				if col == nameCol || col >= len(header) {
					continue
				}
				itemName := strings.TrimSpace(header[col])
				cell = strings.TrimSpace(cell)
				if itemName == "" || cell == "" {
					continue
				}

				item, ok := itemsByName[itemName]
				if !ok {
					skippedItems[itemName] = true
					continue
				}
				amount, err := decimal.NewFromString(cell)
				if err != nil {
					return fmt.Errorf("invalid amount %q for %s/%s: %w", cell, name, itemName, err)
				}

				normalized := payroll.NormalizeAmount(item.Type, amount)
				if err := s.payrollRepo.UpsertDetail(ctx, record.ID, item.ID, normalized); err != nil {
					return fmt.Errorf("upsert %s for %s: %w", itemName, name, err)
				}
			}

			report.Applied = append(report.Applied, name)
		}
		return nil
	})
	if err != nil {
		return payroll.ImportReport{}, err
	}

	for itemName := range skippedItems {
		report.SkippedItems = append(report.SkippedItems, itemName)
	}
	return report, nil
}
