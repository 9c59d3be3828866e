package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/athebyme/googleshopping-feed/internal/adapters/feed"
	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(catalog *stubCatalog, selections *stubSelections, details *stubDetails, helper *stubHelper) *FeedGenerator {
	return NewFeedGenerator(
		helper,
		NewAttributeLinkCache(catalog, nopLogger{}),
		NewItemPropertyResolver(selections, nopLogger{}),
		NewDetailJoin(details),
		nopLogger{},
	)
}

func TestGenerate_FullRow(t *testing.T) {
	catalog := &stubCatalog{
		attributes: []models.Attribute{{ID: 1, BackendName: "Farbe", MarketplaceKey: "color"}},
		values:     map[int64][]models.AttributeValue{1: {{ID: 101, AttributeID: 1}}},
		names:      map[int64]string{101: "Blau"},
	}
	shipping := decimal.NewFromFloat(4.95)
	details := &stubDetails{records: []*models.DetailRecord{{
		VariationID:       101,
		ItemID:            11,
		RetailPrice:       decimal.NewFromFloat(19.999),
		SpecialOfferPrice: decimal.Zero,
		Properties: []models.Characteristic{
			{PropertyID: 1, ValueType: "text", Value: "male", Component: "gender", Market: GoogleShoppingMarket},
			{PropertyID: 2, ValueType: "text", Value: "Sommer", Component: "custom_label_0", Market: GoogleShoppingMarket},
			{PropertyID: 3, ValueType: "text", Value: "ignored", Component: "age_group", Market: 4.00},
		},
	}}}
	helper := &stubHelper{
		manufacturerName: "Acme",
		category:         "Bekleidung > Muetzen",
		marketCategory:   "178",
		shippingCost:     &shipping,
	}

	batch := []*models.VariationRecord{
		{
			ID: 101,
			Item: models.ItemData{
				ID:             11,
				ManufacturerID: 5,
				ConditionID:    4,
				Name:           "Wollmuetze",
				Description:    "Warme Muetze aus Wolle",
				URLPath:        "wollmuetze",
			},
			Data:              models.VariationData{Model: "WM-1", WeightG: 250, AvailabilityID: 1},
			Unit:              models.UnitData{ID: 3, Content: 150},
			Attributes:        []models.AttributeValueLink{{AttributeID: 1, ValueID: 101}},
			Barcodes:          []models.Barcode{{Type: "GTIN", Code: "4006381333931"}},
			Images:            []string{"https://img.example/1.jpg"},
			DefaultCategoryID: 42,
		},
		// без детальной записи, должен быть пропущен
		{ID: 102, Item: models.ItemData{ID: 11}},
	}

	var buf bytes.Buffer
	generator := newTestGenerator(catalog, &stubSelections{}, details, helper)

	summary, err := generator.Generate(context.Background(), batch, testSettings(nil), nil, feed.NewWriter(&buf))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Emitted)
	assert.Equal(t, 1, summary.Skipped)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	header := strings.Split(lines[0], "\t")
	require.Len(t, header, 39)
	assert.Equal(t, models.FeedHeader(), header)

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, 39)

	expect := func(column, value string) {
		for i, name := range header {
			if name == column {
				assert.Equal(t, value, row[i], "колонка %s", column)
				return
			}
		}
		t.Fatalf("колонка %s отсутствует в заголовке", column)
	}

	expect("id", "11-101")
	expect("title", "Wollmuetze")
	expect("description", "Warme Muetze aus Wolle")
	expect("google_product_category", "178")
	expect("product_type", "Bekleidung > Muetzen")
	expect("link", "https://shop.example/wollmuetze")
	expect("image_link", "https://img.example/1.jpg")
	expect("condition", "used")
	expect("availability", "in stock")
	expect("price", "20.00")
	expect("sale_price", "")
	expect("brand", "Acme")
	expect("gtin", "4006381333931")
	expect("isbn", "")
	expect("mpn", "WM-1")
	expect("color", "Blau")
	expect("size", "")
	expect("item_group_id", "11")
	expect("shipping", "DE:::4.95")
	expect("shipping_weight", "250 g")
	expect("gender", "male")
	// характеристика чужого маркетплейса не попадает в фид
	expect("age_group", "")
	expect("identifier_exists", "true")
	expect("unit_pricing_measure", "150,00 g")
	expect("unit_pricing_base_measure", "100 g")
	expect("adult", "")
	expect("custom_label_0", "Sommer")
	expect("custom_label_1", "")
}

func TestGenerate_EmptyBatchWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	generator := newTestGenerator(&stubCatalog{}, &stubSelections{}, &stubDetails{}, &stubHelper{})

	summary, err := generator.Generate(context.Background(), nil, testSettings(nil), nil, feed.NewWriter(&buf))
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Emitted)
	assert.Equal(t, 0, summary.Skipped)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Len(t, strings.Split(lines[0], "\t"), 39)
}

func TestGenerate_SecondRunRejected(t *testing.T) {
	var buf bytes.Buffer
	generator := newTestGenerator(&stubCatalog{}, &stubSelections{}, &stubDetails{}, &stubHelper{})

	_, err := generator.Generate(context.Background(), nil, testSettings(nil), nil, feed.NewWriter(&buf))
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), nil, testSettings(nil), nil, feed.NewWriter(&buf))
	assert.ErrorIs(t, err, utils.ErrInvalidRunState)
}

func TestSalePrice(t *testing.T) {
	generator := newTestGenerator(&stubCatalog{}, &stubSelections{}, &stubDetails{}, &stubHelper{})
	price := decimal.NewFromFloat(20)

	cases := []struct {
		name string
		sale float64
		want string
	}{
		{"strict discount", 15.5, "15.50"},
		{"equal to price", 20, ""},
		{"above price", 25, ""},
		{"zero", 0, ""},
		{"negative", -1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detail := &models.DetailRecord{
				RetailPrice:       price,
				SpecialOfferPrice: decimal.NewFromFloat(tc.sale),
			}
			assert.Equal(t, tc.want, generator.salePrice(detail, testSettings(nil)))
		})
	}
}

func TestShipping_NotConfigured(t *testing.T) {
	generator := newTestGenerator(&stubCatalog{}, &stubSelections{}, &stubDetails{}, &stubHelper{})
	v := &models.VariationRecord{Item: models.ItemData{ID: 11}}

	assert.Equal(t, "", generator.shipping(context.Background(), v, testSettings(nil)))
}

func TestIdentifierExists(t *testing.T) {
	barcode := []models.Barcode{{Type: "GTIN", Code: "4006381333931"}}

	cases := []struct {
		name         string
		model        string
		barcodes     []models.Barcode
		manufacturer string
		want         string
	}{
		{"all three", "WM-1", barcode, "Acme", "true"},
		{"model and barcode", "WM-1", barcode, "", "true"},
		{"model and brand", "WM-1", nil, "Acme", "true"},
		{"barcode and brand", "", barcode, "Acme", "true"},
		{"model only", "WM-1", nil, "", "false"},
		{"nothing", "", nil, "", "false"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			generator := newTestGenerator(&stubCatalog{}, &stubSelections{}, &stubDetails{},
				&stubHelper{manufacturerName: tc.manufacturer})
			v := &models.VariationRecord{
				Data:     models.VariationData{Model: tc.model},
				Barcodes: tc.barcodes,
			}
			assert.Equal(t, tc.want, generator.identifierExists(context.Background(), v, testSettings(nil)))
		})
	}
}
