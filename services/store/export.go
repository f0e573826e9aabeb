package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Anusara14/land-scraper/models"
	scrapeerrors "github.com/Anusara14/land-scraper/pkg/errors"
)

// csvHeader is the fixed export column order. The latitude/longitude
// columns map onto point geometry in a GIS delimited-text importer
// (WGS84 / EPSG:4326).
var csvHeader = []string{
	"id", "title", "address", "region", "price_total", "price_per_perch",
	"price_raw", "size_perches", "latitude", "longitude", "source", "url",
	"posted_date", "scraped_at",
}

// utf8BOM keeps spreadsheet tools from misreading the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV serializes listings as BOM-prefixed UTF-8 CSV with one
// header row and one row per record
func ExportCSV(w io.Writer, listings []models.Listing) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return scrapeerrors.NewPersistence("write BOM", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return scrapeerrors.NewPersistence("write header", err)
	}

	for i, l := range listings {
		row := []string{
			strconv.Itoa(i + 1),
			l.Title,
			l.Address,
			l.Region,
			int64Field(l.PriceTotal),
			int64Field(l.PricePerPerch),
			l.PriceRaw,
			floatField(l.SizePerches),
			floatField(l.Latitude),
			floatField(l.Longitude),
			l.Source,
			l.URL,
			l.PostedDate,
			l.ScrapedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := cw.Write(row); err != nil {
			return scrapeerrors.NewPersistence(fmt.Sprintf("write row %d", i+1), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return scrapeerrors.NewPersistence("flush export", err)
	}
	return nil
}

func int64Field(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
