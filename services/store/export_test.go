package store

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anusara14/land-scraper/models"
)

func TestExportCSV(t *testing.T) {
	price := int64(8_000_000)
	perPerch := int64(400_000)
	size := 20.0

	l := models.Listing{
		Title:         "Land for sale, close to town",
		Address:       "Nugegoda, Colombo",
		PriceRaw:      "Rs 8,000,000",
		PriceTotal:    &price,
		PricePerPerch: &perPerch,
		SizePerches:   &size,
		URL:           "https://ikman.lk/en/ad/x",
		Source:        "Ikman",
		Region:        "Colombo",
		PostedDate:    "2024-06-12",
		ScrapedAt:     time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
	}
	l.SetCoords(6.8649, 79.8997)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []models.Listing{l}))

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3], "BOM prefix")

	// Round-trip: a comma-bearing title survives quoting
	r := csv.NewReader(bytes.NewReader(out[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "latitude", header[8])
	assert.Equal(t, "longitude", header[9])

	row := rows[1]
	assert.Equal(t, "Land for sale, close to town", row[1])
	assert.Equal(t, "8000000", row[4])
	assert.Equal(t, "400000", row[5])
	assert.Equal(t, "20", row[7])
	assert.Equal(t, "6.8649", row[8])
	assert.Equal(t, "79.8997", row[9])
	assert.Equal(t, "2024-06-12", row[12])
}

func TestExportCSVAbsentFields(t *testing.T) {
	l := models.Listing{
		Title:     "Bare land",
		URL:       "https://ikman.lk/en/ad/y",
		Source:    "Ikman",
		Region:    "Unknown",
		ScrapedAt: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []models.Listing{l}))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	row := rows[1]
	assert.Equal(t, "", row[4], "price_total")
	assert.Equal(t, "", row[8], "latitude")
	assert.Equal(t, "", row[9], "longitude")
}
