package services

import (
	"context"
	"fmt"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/shopspring/decimal"
)

// nopLogger заглушает логгер в тестах
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func (nopLogger) DebugWithContext(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) InfoWithContext(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) WarnWithContext(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) ErrorWithContext(ctx context.Context, msg string, args ...interface{}) {}

func (l nopLogger) WithFields(fields ...interfaces.LogField) interfaces.LoggerPort      { return l }
func (l nopLogger) WithField(key string, value interface{}) interfaces.LoggerPort       { return l }
func (l nopLogger) WithRunID(runID string) interfaces.LoggerPort                        { return l }
func (nopLogger) Sync() error                                                           { return nil }

// stubCatalog имитирует каталог атрибутов с заранее заданными страницами
type stubCatalog struct {
	attributes []models.Attribute
	values     map[int64][]models.AttributeValue
	names      map[int64]string

	listAttributesCalls int
	listAttributesErr   error
}

func (s *stubCatalog) ListAttributes(ctx context.Context, page, pageSize int) ([]models.Attribute, error) {
	s.listAttributesCalls++
	if s.listAttributesErr != nil {
		return nil, s.listAttributesErr
	}
	return pageOf(s.attributes, page, pageSize), nil
}

func (s *stubCatalog) ListAttributeValues(ctx context.Context, attributeID int64, page, pageSize int) ([]models.AttributeValue, error) {
	return pageOf(s.values[attributeID], page, pageSize), nil
}

func (s *stubCatalog) GetAttributeValueName(ctx context.Context, valueID int64, lang string) (string, error) {
	return s.names[valueID], nil
}

// pageOf возвращает одну страницу среза
func pageOf[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// stubSelections имитирует справочник значений свойств
type stubSelections struct {
	selections map[int64][]models.PropertySelection
	calls      int
	err        error
}

func (s *stubSelections) ListSelections(ctx context.Context, propertyID int64, lang string) ([]models.PropertySelection, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.selections[propertyID], nil
}

// stubDetails имитирует вторичный слой данных
type stubDetails struct {
	records []*models.DetailRecord
	calls   int
	err     error
}

func (s *stubDetails) GetDetails(ctx context.Context, variationIDs []int64, settings *models.Settings, filter *models.DetailFilter) ([]*models.DetailRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// stubIndex имитирует поисковый индекс вариантов
type stubIndex struct {
	variations []*models.VariationRecord
}

func (s *stubIndex) ListVariations(ctx context.Context, settings *models.Settings, filter *models.DetailFilter, page, pageSize int) ([]*models.VariationRecord, error) {
	return pageOf(s.variations, page, pageSize), nil
}

// stubHelper имитирует помощник экспорта с настраиваемыми ответами
type stubHelper struct {
	manufacturerName string
	category         string
	marketCategory   string
	shippingCost     *decimal.Decimal
	country          string
}

func (h *stubHelper) GetName(v *models.VariationRecord, settings *models.Settings, maxLength int) string {
	if v.Data.Name != "" {
		return v.Data.Name
	}
	return v.Item.Name
}

func (h *stubHelper) GetDescription(v *models.VariationRecord, settings *models.Settings, maxLength int) string {
	return v.Item.Description
}

func (h *stubHelper) GetCategory(ctx context.Context, categoryID int64, lang string, channelID int) string {
	return h.category
}

func (h *stubHelper) GetCategoryMarketplace(ctx context.Context, categoryID int64, channelID int, marketplaceID float64) string {
	return h.marketCategory
}

func (h *stubHelper) GetURL(v *models.VariationRecord, settings *models.Settings) string {
	return "https://shop.example/" + v.Item.URLPath
}

func (h *stubHelper) GetAvailability(v *models.VariationRecord, settings *models.Settings) string {
	if v.Data.AvailabilityID == 1 {
		return "in stock"
	}
	return "out of stock"
}

func (h *stubHelper) GetBarcodeByType(v *models.VariationRecord, barcodeType string) string {
	for _, barcode := range v.Barcodes {
		if barcode.Type == barcodeType {
			return barcode.Code
		}
	}
	return ""
}

func (h *stubHelper) GetExternalManufacturerName(ctx context.Context, manufacturerID int64) string {
	return h.manufacturerName
}

func (h *stubHelper) GetImageList(v *models.VariationRecord, settings *models.Settings) []string {
	return v.Images
}

func (h *stubHelper) GetSpecialPrice(d *models.DetailRecord, settings *models.Settings) decimal.Decimal {
	return d.SpecialOfferPrice
}

func (h *stubHelper) GetShippingCost(ctx context.Context, itemID int64, settings *models.Settings) *decimal.Decimal {
	return h.shippingCost
}

func (h *stubHelper) GetCountry(settings *models.Settings, isoFormat string) string {
	if h.country != "" {
		return h.country
	}
	return "DE"
}

func (h *stubHelper) GenerateSKU(v *models.VariationRecord, marketCode float64) string {
	if v.SKU != "" {
		return v.SKU
	}
	return fmt.Sprintf("%d-%d", v.Item.ID, v.ID)
}

func (h *stubHelper) GetItemCharactersByComponent(d *models.DetailRecord, marketCode float64) []models.Characteristic {
	var chars []models.Characteristic
	for _, char := range d.Properties {
		if char.Market == marketCode {
			chars = append(chars, char)
		}
	}
	return chars
}
