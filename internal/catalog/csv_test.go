package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalog = `product_id,name,price,image_url,mood_tags
prod-candle,Aromatherapy Candle,12.99,https://example.com/candle.jpg,"comfort, cozy, self-care"
prod-kite,Rainbow Kite,24.50,,"fun, colorful, joy"
prod-mug,Plain Mug,8.00,images/mug.png,"practical, everyday"
`

func TestParseCatalog_Valid(t *testing.T) {
	records, err := parseCatalog(strings.NewReader(validCatalog))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "prod-candle", first.ID)
	assert.Equal(t, "Aromatherapy Candle", first.Name)
	assert.InDelta(t, 12.99, first.Price, 0.001)
	assert.Equal(t, "https://example.com/candle.jpg", first.ImageURL)
	assert.Equal(t, []string{"comfort", "cozy", "self-care"}, first.MoodTags)

	assert.Empty(t, records[1].ImageURL)
	assert.Equal(t, "images/mug.png", records[2].ImageURL)

	// Row order is display order.
	assert.Equal(t, "prod-kite", records[1].ID)
	assert.Equal(t, "prod-mug", records[2].ID)
}

func TestParseCatalog_ReorderedColumns(t *testing.T) {
	csv := `name,mood_tags,product_id,price,image_url
Rainbow Kite,"fun, joy",prod-kite,24.50,
`
	records, err := parseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "prod-kite", records[0].ID)
	assert.Equal(t, "Rainbow Kite", records[0].Name)
	assert.InDelta(t, 24.50, records[0].Price, 0.001)
}

func TestParseCatalog_NormalizesTags(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
prod-oil,Essential Oils,45.50,,"Stress Relief, SELF_CARE, stress relief, "
`
	records, err := parseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"stress-relief", "self-care"}, records[0].MoodTags)
}

func TestParseCatalog_EmptyTagsAllowed(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
prod-box,Cardboard Box,1.00,,
`
	records, err := parseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, records[0].MoodTags)
}

func TestParseCatalog_EmptyFile(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseCatalog_HeaderOnly(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("product_id,name,price,image_url,mood_tags\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no products")
}

func TestParseCatalog_MissingColumns(t *testing.T) {
	csv := `product_id,name,image_url
prod-kite,Rainbow Kite,
`
	_, err := parseCatalog(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
	assert.Contains(t, err.Error(), "mood_tags")
}

func TestParseCatalog_DuplicateID(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
prod-kite,Rainbow Kite,24.50,,"fun"
prod-kite,Another Kite,19.99,,"fun"
`
	_, err := parseCatalog(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate product_id "prod-kite"`)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParseCatalog_RowErrors(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
,No ID,5.00,,"fun"
prod-noname,,5.00,,"fun"
prod-badprice,Bad Price,not-a-number,,"fun"
prod-negative,Negative,-3.50,,"fun"
prod-ok,Fine Product,5.00,,"fun"
`
	_, err := parseCatalog(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 invalid rows")
	assert.Contains(t, err.Error(), "line 2: missing product_id")
	assert.Contains(t, err.Error(), "line 3: missing name")
	assert.Contains(t, err.Error(), `line 4: invalid price "not-a-number"`)
	assert.Contains(t, err.Error(), "line 5")
}

func TestParseCatalog_WrongFieldCount(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
prod-short,Too Few Fields,5.00
`
	_, err := parseCatalog(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rows")
}

func TestParseCatalog_QuotedCommaName(t *testing.T) {
	csv := `product_id,name,price,image_url,mood_tags
prod-set,"Mugs, Assorted Set of 4",19.99,,"practical"
`
	records, err := parseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "Mugs, Assorted Set of 4", records[0].Name)
}
