package stocklog

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Service exposes the manager's views over the movement log.
type Service interface {
	// List returns the newest entries, most recent first.
	List(ctx context.Context, limit int) ([]*Entry, error)

	// ExportXLSX writes the newest entries as an Excel workbook.
	ExportXLSX(ctx context.Context, w io.Writer, limit int) error
}

type service struct {
	repo Repository
}

// NewService creates a new stock log service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, limit int) ([]*Entry, error) {
	return s.repo.List(ctx, limit)
}

var exportHeader = []string{"Date", "By", "Action", "Item", "Location", "Change", "New Qty", "Unit"}

func (s *service) ExportXLSX(ctx context.Context, w io.Writer, limit int) error {
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Stock Logs"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	for i, e := range entries {
		row := i + 2
		values := []interface{}{
			e.LoggedAt.Format("2006-01-02 15:04"),
			e.ActionBy, e.ActionType, e.ItemName, e.Location,
			e.ChangeAmount, e.NewQty, e.Unit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
