// Package catalog loads the product catalog from a flat CSV file and
// imports it into the store as one atomic replacement. A watcher reloads
// the catalog when the file changes; a failed reload keeps the previous
// catalog live.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/moodshopapp/moodshop-server/internal/mood"
)

// Required catalog columns. The mood_tags cell holds a comma separated
// list, so rows quote it.
const (
	columnID       = "product_id"
	columnName     = "name"
	columnPrice    = "price"
	columnImageURL = "image_url"
	columnMoodTags = "mood_tags"
)

var requiredColumns = []string{columnID, columnName, columnPrice, columnImageURL, columnMoodTags}

// record is one validated catalog row before image ingestion.
type record struct {
	ID       string
	Name     string
	Price    float64
	ImageURL string
	MoodTags []string
}

// columnIndex maps column names to their position in the header row.
// Columns are matched by name, not position, and extra columns are ignored.
type columnIndex map[string]int

func parseHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseCatalog reads and validates the full catalog. Any invalid row fails
// the whole load so a botched edit never half-replaces the catalog.
func parseCatalog(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	idx, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var (
		records []record
		errs    []error
		seen    = make(map[string]int) // product id -> first line
	)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number.
			errs = append(errs, err)
			continue
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(idx, row)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		if first, dup := seen[rec.ID]; dup {
			errs = append(errs, fmt.Errorf("line %d: duplicate product_id %q (first seen on line %d)", line, rec.ID, first))
			continue
		}
		seen[rec.ID] = line

		records = append(records, rec)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog has %d invalid rows: %w", len(errs), errors.Join(errs...))
	}
	if len(records) == 0 {
		return nil, errors.New("catalog has no products")
	}

	return records, nil
}

func parseRow(idx columnIndex, row []string) (record, error) {
	field := func(name string) string {
		return strings.TrimSpace(row[idx[name]])
	}

	rec := record{
		ID:       field(columnID),
		Name:     field(columnName),
		ImageURL: field(columnImageURL),
	}

	if rec.ID == "" {
		return record{}, errors.New("missing product_id")
	}
	if rec.Name == "" {
		return record{}, errors.New("missing name")
	}

	price, err := strconv.ParseFloat(field(columnPrice), 64)
	if err != nil {
		return record{}, fmt.Errorf("invalid price %q", field(columnPrice))
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return record{}, fmt.Errorf("price %q must be a non-negative number", field(columnPrice))
	}
	rec.Price = price

	rec.MoodTags = mood.NormalizeTags(strings.Split(field(columnMoodTags), ","))

	return rec, nil
}
