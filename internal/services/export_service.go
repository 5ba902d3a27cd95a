package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var overviewHeader = []string{
	"Client", "Phone", "Projects", "Bills", "Area (sq ft)", "Total", "Paid", "Outstanding",
	"Paid %", "Pending", "Partial", "Paid Bills", "Overdue",
}

type ExportService struct {
	overviewSvc *OverviewService
	billSvc     *BillService
	settingsSvc *SettingsService
}

func NewExportService(overviewSvc *OverviewService, billSvc *BillService, settingsSvc *SettingsService) *ExportService {
	return &ExportService{overviewSvc: overviewSvc, billSvc: billSvc, settingsSvc: settingsSvc}
}

// Overview renders the client overview in the requested format and returns
// the file body, file name and content type.
func (s *ExportService) Overview(ctx context.Context, actor Actor, format string) ([]byte, string, string, error) {
	overview, err := s.overviewSvc.Get(ctx, actor)
	if err != nil {
		return nil, "", "", err
	}

	switch format {
	case "", FormatCSV:
		data, name, err := s.OverviewCSV(overview)
		return data, name, "text/csv", err
	case FormatXLSX:
		data, name, err := s.OverviewXLSX(overview)
		return data, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", "", newError(ErrValidation, "Unsupported format %q", format)
	}
}

func overviewRow(c models.ClientOverview) []string {
	phone := ""
	if c.Phone != nil {
		phone = *c.Phone
	}
	sum := c.Summary
	return []string{
		c.Name,
		phone,
		strconv.Itoa(sum.TotalProjects),
		strconv.Itoa(sum.TotalBills),
		sum.TotalArea.StringFixed(2),
		sum.TotalAmount.StringFixed(2),
		sum.PaidAmount.StringFixed(2),
		sum.OutstandingAmount.StringFixed(2),
		sum.PaymentPercentage.StringFixed(2),
		strconv.Itoa(sum.BillsByStatus.Pending),
		strconv.Itoa(sum.BillsByStatus.Partial),
		strconv.Itoa(sum.BillsByStatus.Paid),
		strconv.Itoa(sum.BillsByStatus.Overdue),
	}
}

func totalsRow(t models.OverviewTotals) []string {
	return []string{
		fmt.Sprintf("Total (%d clients)", t.TotalClients),
		"",
		strconv.Itoa(t.TotalProjects),
		strconv.Itoa(t.TotalBills),
		t.TotalArea.StringFixed(2),
		t.TotalAmount.StringFixed(2),
		t.TotalPaid.StringFixed(2),
		t.TotalOutstanding.StringFixed(2),
		"", "", "", "", "",
	}
}

func (s *ExportService) OverviewCSV(overview *models.Overview) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(overviewHeader)
	for _, client := range overview.Clients {
		_ = writer.Write(overviewRow(client))
	}
	_ = writer.Write(totalsRow(overview.Totals))

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("client_overview_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) OverviewXLSX(overview *models.Overview) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Overview"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	rows := make([][]string, 0, len(overview.Clients)+2)
	rows = append(rows, overviewHeader)
	for _, client := range overview.Clients {
		rows = append(rows, overviewRow(client))
	}
	rows = append(rows, totalsRow(overview.Totals))

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, "", err
			}
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(overviewHeader), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	_ = f.SetColWidth(sheet, "A", "A", 30)

	totalRow := len(rows)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("client_overview_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// BillPDF renders an invoice for a bill the actor can see
func (s *ExportService) BillPDF(ctx context.Context, actor Actor, billID uint) ([]byte, string, error) {
	bill, err := s.billSvc.Get(ctx, actor, billID)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 10, tr(settings.CompanyName))
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 10, "INVOICE", "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	if settings.CompanyAddress != nil {
		pdf.Cell(120, 6, tr(*settings.CompanyAddress))
		pdf.Ln(5)
	}
	if settings.CompanyPhone != nil {
		pdf.Cell(120, 6, tr(*settings.CompanyPhone))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	field := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(45, 7, label)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(100, 7, tr(value))
		pdf.Ln(6)
	}

	field("Bill Number:", bill.BillNumber)
	field("Issued:", bill.CreatedAt.Format("2006-01-02"))
	if bill.DueDate != nil {
		field("Due Date:", bill.DueDate.Format("2006-01-02"))
	}
	field("Status:", bill.Status)
	if bill.Client != nil {
		field("Client:", bill.Client.Name)
	}
	if bill.Project != nil {
		field("Project:", bill.Project.Name)
		field("Area:", fmt.Sprintf("%s sq ft at %s", bill.Project.Area.StringFixed(2), bill.Project.RatePerSqFt.StringFixed(2)))
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(50, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Method", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, payment := range bill.Payments {
		pdf.CellFormat(50, 7, payment.PaymentDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, payment.Method, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, payment.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	total := func(label, value string) {
		pdf.Cell(100, 7, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(30, 7, label)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(20, 7, value, "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	total("Total:", bill.TotalAmount.StringFixed(2))
	total("Paid:", bill.PaidAmount.StringFixed(2))
	total("Outstanding:", bill.OutstandingAmount.StringFixed(2))

	if bill.Notes != nil && *bill.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr(*bill.Notes), "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("bill_%s.pdf", bill.BillNumber)
	return buf.Bytes(), filename, nil
}
