package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/features/approval"

	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportApprovals renders the requests visible to the caller as an
	// xlsx workbook. Returns the file bytes and the suggested filename.
	ExportApprovals(ctx context.Context, caller common_models.CallerContext) ([]byte, string, error)
}

type ReportServiceImpl struct {
	ApprovalService approval.ApprovalService
}

func NewReportService(approvalService approval.ApprovalService) ReportService {
	return &ReportServiceImpl{
		ApprovalService: approvalService,
	}
}

func (s *ReportServiceImpl) ExportApprovals(ctx context.Context, caller common_models.CallerContext) ([]byte, string, error) {
	requests, err := s.ApprovalService.GetAllRequests(ctx, caller)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Approvals"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	columns := []string{"ID", "Type", "Employee", "Status", "Current Step", "Chain", "Overdue", "Created At", "Updated At"}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, req := range requests {
		values := []interface{}{
			req.ID.Hex(),
			string(req.RequestType),
			fmt.Sprintf("%s (%s)", req.EmployeeName, req.EmployeeID),
			string(req.Status),
			req.CurrentStep,
			formatChain(req.ApprovalChain),
			req.IsOverdue,
			req.CreatedAt.Format("2006-01-02 15:04:05"),
			req.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("approvals_%s.xlsx", time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func formatChain(chain []approval.ApprovalChainStep) string {
	parts := make([]string, 0, len(chain))
	for _, step := range chain {
		part := fmt.Sprintf("L%d %s:%s", step.Level, step.ApproverName, step.Status)
		if step.DelegatedTo != "" {
			part += " (delegated to " + step.DelegatedToName + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " -> ")
}
