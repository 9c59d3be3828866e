package services

import (
	"context"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/shopspring/decimal"
)

// AttributeCatalogPort определяет контракт внешнего каталога атрибутов.
// Листинги постраничные, размер страницы фиксирован на стороне вызова.
type AttributeCatalogPort interface {
	// ListAttributes возвращает одну страницу каталога атрибутов
	ListAttributes(ctx context.Context, page, pageSize int) ([]models.Attribute, error)

	// ListAttributeValues возвращает одну страницу значений атрибута
	ListAttributeValues(ctx context.Context, attributeID int64, page, pageSize int) ([]models.AttributeValue, error)

	// GetAttributeValueName возвращает локализованное имя значения атрибута.
	// Отсутствующее имя возвращается пустой строкой, не ошибкой.
	GetAttributeValueName(ctx context.Context, valueID int64, lang string) (string, error)
}

// PropertySelectionPort определяет контракт справочника значений свойств типа "selection"
type PropertySelectionPort interface {
	// ListSelections возвращает локализованные значения свойства
	ListSelections(ctx context.Context, propertyID int64, lang string) ([]models.PropertySelection, error)
}

// DetailDataPort определяет контракт вторичного слоя данных (цены/остатки/характеристики)
type DetailDataPort interface {
	// GetDetails возвращает детальные записи для набора вариантов.
	// Порядок результата не гарантирован относительно входного набора.
	GetDetails(ctx context.Context, variationIDs []int64, settings *models.Settings, filter *models.DetailFilter) ([]*models.DetailRecord, error)
}

// VariationIndexPort определяет контракт поискового индекса вариантов
type VariationIndexPort interface {
	// ListVariations возвращает одну страницу вариантов для экспорта
	ListVariations(ctx context.Context, settings *models.Settings, filter *models.DetailFilter, page, pageSize int) ([]*models.VariationRecord, error)
}

// ExportHelperPort определяет контракт общего помощника экспорта: имена, описания,
// категории, URL, штрихкоды, изображения, цены со скидкой, доставка.
// Методы трактуются как чистые функции от (запись, настройки); ошибки
// внешних вызовов реализация гасит внутри, возвращая пустые значения.
type ExportHelperPort interface {
	// GetName возвращает название варианта, обрезанное до maxLength символов
	GetName(v *models.VariationRecord, settings *models.Settings, maxLength int) string

	// GetDescription возвращает описание товара, обрезанное до maxLength символов
	GetDescription(v *models.VariationRecord, settings *models.Settings, maxLength int) string

	// GetCategory возвращает путь категории на языке запуска
	GetCategory(ctx context.Context, categoryID int64, lang string, channelID int) string

	// GetCategoryMarketplace возвращает категорию в терминах маркетплейса
	GetCategoryMarketplace(ctx context.Context, categoryID int64, channelID int, marketplaceID float64) string

	// GetURL возвращает канонический URL варианта
	GetURL(v *models.VariationRecord, settings *models.Settings) string

	// GetAvailability возвращает текст доступности для фида
	GetAvailability(v *models.VariationRecord, settings *models.Settings) string

	// GetBarcodeByType возвращает штрихкод запрошенного типа или пустую строку
	GetBarcodeByType(v *models.VariationRecord, barcodeType string) string

	// GetExternalManufacturerName возвращает внешнее имя производителя
	GetExternalManufacturerName(ctx context.Context, manufacturerID int64) string

	// GetImageList возвращает URL изображений в порядке позиций
	GetImageList(v *models.VariationRecord, settings *models.Settings) []string

	// GetSpecialPrice возвращает цену по акции для варианта
	GetSpecialPrice(d *models.DetailRecord, settings *models.Settings) decimal.Decimal

	// GetShippingCost возвращает стоимость доставки или nil, если она не настроена
	GetShippingCost(ctx context.Context, itemID int64, settings *models.Settings) *decimal.Decimal

	// GetCountry возвращает код страны доставки в запрошенном ISO-формате
	GetCountry(settings *models.Settings, isoFormat string) string

	// GenerateSKU возвращает артикул варианта для маркетплейса
	GenerateSKU(v *models.VariationRecord, marketCode float64) string

	// GetItemCharactersByComponent возвращает характеристики товара,
	// привязанные к указанному маркетплейсу
	GetItemCharactersByComponent(d *models.DetailRecord, marketCode float64) []models.Characteristic
}
