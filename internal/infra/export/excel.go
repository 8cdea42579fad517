package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
)

// LeadColumns is the column set of the spreadsheet export.
var LeadColumns = []string{
	"Name", "Email", "Phone", "Company", "Service", "Source",
	"Campaign", "Status", "Assigned To", "Value", "Created At",
}

const (
	leadsSheet    = "Leads"
	summarySheet  = "Summary"
	sourcesSheet  = "Source Performance"
	campaignSheet = "Campaign Performance"
	timeLayout    = "2006-01-02 15:04:05"
)

// Filename builds e.g. leads_2025-03-01.xlsx.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(time.DateOnly), ext)
}

// LeadsXLSX writes one sheet with a row per lead.
func LeadsXLSX(w io.Writer, leads []entity.Lead, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeHeader(f, leadsSheet, LeadColumns); err != nil {
		return err
	}

	for i, l := range leads {
		row := []any{
			l.Name, l.Email, l.Phone, l.Company, l.Service, l.Source,
			l.Campaign, string(l.Status), l.AssignedTo, l.Value,
			l.CreatedAt.In(loc).Format(timeLayout),
		}
		if err := setRow(f, leadsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(leadsSheet, "A", "K", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return writeTo(f, w)
}

// AnalyticsXLSX writes the summary and the source and campaign tables.
func AnalyticsXLSX(w io.Writer, report analytics.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeHeader(f, summarySheet, []string{"Metric", "Value"}); err != nil {
		return err
	}
	s := report.Summary
	summaryRows := [][]any{
		{"Total Leads", s.TotalLeads},
		{"Converted Leads", s.Converted},
		{"Conversion Rate", s.ConversionRate + "%"},
		{"Total Revenue", analytics.FormatMoney(s.TotalValue)},
		{"Average Deal Value", analytics.FormatMoney(s.AverageValue)},
	}
	for i, row := range summaryRows {
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := groupSheet(f, sourcesSheet,
		[]string{"Source", "Total", "Converted", "Conversion Rate", "Value"},
		report.Sources, func(g analytics.Group) []any {
			return []any{g.Name, g.Total, g.Converted, g.ConversionRate, g.Value}
		}); err != nil {
		return err
	}
	if err := groupSheet(f, campaignSheet,
		[]string{"Campaign", "Leads", "Converted", "Revenue"},
		report.Campaigns, func(g analytics.Group) []any {
			return []any{g.Name, g.Total, g.Converted, g.Value}
		}); err != nil {
		return err
	}

	return writeTo(f, w)
}

func groupSheet(f *excelize.File, sheet string, header []string, groups []analytics.Group, row func(analytics.Group) []any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, g := range groups {
		if err := setRow(f, sheet, i+2, row(g)); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := setRow(f, sheet, 1, cells); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeTo(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
