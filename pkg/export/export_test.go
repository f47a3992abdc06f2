package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Dataset {
	return Dataset{
		Title:   "Notices",
		Headers: []string{"Date", "Title", "Description"},
		Rows: []map[string]string{
			{"Date": "2024-03-15", "Title": "Exam, week", "Description": "Bring pencils"},
			{"Date": "2024-03-14", "Title": "Sports day"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sample())
	require.NoError(t, err)

	assert.Equal(t, "Date,Title,Description\n2024-03-15,\"Exam, week\",Bring pencils\n2024-03-14,Sports day,\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter(nil).Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter(map[string]float64{"Description": 3}).Render(sample())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFColumnWidthsFollowWeights(t *testing.T) {
	widths := NewPDFExporter(map[string]float64{"b": 2}).columnWidths([]string{"a", "b", "c"})

	require.Len(t, widths, 3)
	assert.InDelta(t, pdfPageWidth/4, widths[0], 0.001)
	assert.InDelta(t, pdfPageWidth/2, widths[1], 0.001)
}
