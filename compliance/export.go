package compliance

import (
	"context"

	"github.com/mmdatafocus/practice_backend/models"
	"github.com/xuri/excelize/v2"
)

// ExportDeadlines builds an Excel workbook of the filtered register, sorted
// the same way as listings: by due date, undated items last. The client
// column is resolved best-effort; an unknown client leaves the cell blank.
func (e *Engine) ExportDeadlines(ctx context.Context, filter models.ComplianceFilter) (*excelize.File, error) {

	items, err := e.ListComplianceItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Deadlines"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Client", "Type", "Description", "Due Date", "Status", "Source", "Reference", "Period"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	clientNames := make(map[string]string)
	for row, item := range items {
		name, ok := clientNames[item.ClientId]
		if !ok {
			if client, err := e.Clients.Resolve(ctx, item.ClientId); err == nil {
				name = client.Name
			}
			clientNames[item.ClientId] = name
		}

		due := ""
		if item.DueDate != nil {
			due = item.DueDate.Format("2006-01-02")
		}
		values := []interface{}{name, string(item.Type), item.Description, due,
			string(item.Status), string(item.Source), item.Reference, item.Period}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}
