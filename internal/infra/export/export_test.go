package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
	"github.com/xavierca1/leadpulse/internal/infra/export"
)

var created = time.Date(2025, 2, 3, 23, 30, 0, 0, time.UTC)

func leads() []entity.Lead {
	return []entity.Lead{
		{ID: "lead-1", Name: "Ada Lovelace", Email: "ada@engine.io", Source: "Referral", Status: entity.StatusConverted, AssignedTo: "Sarah Johnson", Value: 1200, CreatedAt: created},
		{ID: "lead-2", Name: strings.Repeat("Very Long Name ", 8), Source: "Website", Status: entity.StatusNew, AssignedTo: entity.Unassigned, CreatedAt: created},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "leads_2025-02-03.xlsx", export.Filename("leads", "xlsx", created))
}

// TestLeadsXLSX - header row plus one row per lead, times in the given zone
func TestLeadsXLSX(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.LeadsXLSX(&buf, leads(), tokyo))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.LeadColumns, rows[0])
	assert.Equal(t, "Ada Lovelace", rows[1][0])
	assert.Equal(t, "Converted", rows[1][7])
	assert.Equal(t, "2025-02-04 08:30:00", rows[1][10])
}

func TestLeadsXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.LeadsXLSX(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAnalyticsXLSX(t *testing.T) {
	report := analytics.BuildReport(leads(), created.Add(-time.Hour), created.Add(time.Hour), time.UTC)

	var buf bytes.Buffer
	require.NoError(t, export.AnalyticsXLSX(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Source Performance", "Campaign Performance"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Total Leads", "2"}, summary[1])
	assert.Equal(t, []string{"Conversion Rate", "50.0%"}, summary[3])
	assert.Equal(t, []string{"Total Revenue", "$1,200"}, summary[4])

	sources, err := f.GetRows("Source Performance")
	require.NoError(t, err)
	assert.Len(t, sources, 3)
}

func TestLeadsPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.LeadsPDF(&buf, leads(), created))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}
