package helper

import (
	"context"
	"fmt"
	"strings"
	"time"

	postgres "github.com/athebyme/googleshopping-feed/internal/adapters/storage"
	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Время жизни справочных данных в кэшах
const (
	localCacheTTL     = 5 * time.Minute
	localCacheCleanup = 10 * time.Minute
	sharedCacheTTL    = 30 * time.Minute
)

// ExportHelper реализует общего помощника экспорта поверх хранилища
// каталога. Справочные данные мемоизируются в локальном кэше процесса
// и, при наличии, в общем Redis-кэше. Ошибки хранилища гасятся:
// помощник возвращает пустые значения.
type ExportHelper struct {
	storage postgres.CatalogStorageInterface
	shared  interfaces.CachePort
	local   *gocache.Cache
	logger  interfaces.LoggerPort
}

// NewExportHelper создает помощник экспорта. shared может быть nil,
// тогда используется только локальный кэш.
func NewExportHelper(storage postgres.CatalogStorageInterface, shared interfaces.CachePort, logger interfaces.LoggerPort) *ExportHelper {
	return &ExportHelper{
		storage: storage,
		shared:  shared,
		local:   gocache.New(localCacheTTL, localCacheCleanup),
		logger:  logger,
	}
}

// GetName возвращает название варианта, обрезанное до maxLength символов.
// Предпочитается собственное имя варианта, затем имя товара.
func (h *ExportHelper) GetName(v *models.VariationRecord, settings *models.Settings, maxLength int) string {
	name := v.Data.Name
	if name == "" {
		name = v.Item.Name
	}
	return truncate(name, maxLength)
}

// GetDescription возвращает описание товара, обрезанное до maxLength символов
func (h *ExportHelper) GetDescription(v *models.VariationRecord, settings *models.Settings, maxLength int) string {
	return truncate(v.Item.Description, maxLength)
}

// GetCategory возвращает путь категории на языке запуска
func (h *ExportHelper) GetCategory(ctx context.Context, categoryID int64, lang string, channelID int) string {
	if categoryID <= 0 {
		return ""
	}

	cacheKey := fmt.Sprintf("category:path:%d:%s:%d", categoryID, lang, channelID)
	if cached, ok := h.getCached(ctx, cacheKey); ok {
		return cached
	}

	path, err := h.storage.GetCategoryPath(ctx, categoryID, lang, channelID)
	if err != nil {
		h.logger.WarnWithContext(ctx, "Ошибка получения пути категории",
			interfaces.LogField{Key: "category_id", Value: categoryID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return ""
	}

	h.putCached(ctx, cacheKey, path)
	return path
}

// GetCategoryMarketplace возвращает категорию в терминах маркетплейса
func (h *ExportHelper) GetCategoryMarketplace(ctx context.Context, categoryID int64, channelID int, marketplaceID float64) string {
	if categoryID <= 0 {
		return ""
	}

	cacheKey := fmt.Sprintf("category:marketplace:%d:%v", categoryID, marketplaceID)
	if cached, ok := h.getCached(ctx, cacheKey); ok {
		return cached
	}

	category, err := h.storage.GetMarketplaceCategory(ctx, categoryID, marketplaceID)
	if err != nil {
		h.logger.WarnWithContext(ctx, "Ошибка получения категории маркетплейса",
			interfaces.LogField{Key: "category_id", Value: categoryID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return ""
	}

	h.putCached(ctx, cacheKey, category)
	return category
}

// GetURL возвращает канонический URL варианта
func (h *ExportHelper) GetURL(v *models.VariationRecord, settings *models.Settings) string {
	baseURL := settings.Get(models.SettingBaseURL)
	if baseURL == "" || v.Item.URLPath == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(v.Item.URLPath, "/")
}

// GetAvailability возвращает текст доступности для фида.
// Коды доступности 1-4 считаются наличием, 5-7 предзаказом,
// остальные отсутствием на складе.
func (h *ExportHelper) GetAvailability(v *models.VariationRecord, settings *models.Settings) string {
	switch {
	case v.Data.AvailabilityID >= 1 && v.Data.AvailabilityID <= 4:
		return settings.GetOrDefault(models.SettingStockInText, "in stock")
	case v.Data.AvailabilityID >= 5 && v.Data.AvailabilityID <= 7:
		return settings.GetOrDefault(models.SettingStockPreorder, "preorder")
	default:
		return settings.GetOrDefault(models.SettingStockOutText, "out of stock")
	}
}

// GetBarcodeByType возвращает первый штрихкод запрошенного типа
func (h *ExportHelper) GetBarcodeByType(v *models.VariationRecord, barcodeType string) string {
	for _, barcode := range v.Barcodes {
		if strings.EqualFold(barcode.Type, barcodeType) {
			return barcode.Code
		}
	}
	return ""
}

// GetExternalManufacturerName возвращает внешнее имя производителя
func (h *ExportHelper) GetExternalManufacturerName(ctx context.Context, manufacturerID int64) string {
	if manufacturerID <= 0 {
		return ""
	}

	cacheKey := fmt.Sprintf("manufacturer:name:%d", manufacturerID)
	if cached, ok := h.getCached(ctx, cacheKey); ok {
		return cached
	}

	name, err := h.storage.GetManufacturerName(ctx, manufacturerID)
	if err != nil {
		h.logger.WarnWithContext(ctx, "Ошибка получения имени производителя",
			interfaces.LogField{Key: "manufacturer_id", Value: manufacturerID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return ""
	}

	h.putCached(ctx, cacheKey, name)
	return name
}

// GetImageList возвращает URL изображений в порядке позиций.
// Относительные пути дополняются базовым URL изображений из настроек.
func (h *ExportHelper) GetImageList(v *models.VariationRecord, settings *models.Settings) []string {
	if len(v.Images) == 0 {
		return nil
	}

	imageBase := strings.TrimRight(settings.Get(models.SettingImageBaseURL), "/")

	urls := make([]string, 0, len(v.Images))
	for _, image := range v.Images {
		if image == "" {
			continue
		}
		if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
			urls = append(urls, image)
			continue
		}
		if imageBase == "" {
			continue
		}
		urls = append(urls, imageBase+"/"+strings.TrimLeft(image, "/"))
	}

	return urls
}

// GetSpecialPrice возвращает цену по акции для варианта
func (h *ExportHelper) GetSpecialPrice(d *models.DetailRecord, settings *models.Settings) decimal.Decimal {
	return d.SpecialOfferPrice
}

// GetShippingCost возвращает стоимость доставки или nil, если она не
// настроена. Приоритет у стоимости, настроенной для товара в каталоге,
// затем у фиксированной стоимости из настроек запуска.
func (h *ExportHelper) GetShippingCost(ctx context.Context, itemID int64, settings *models.Settings) *decimal.Decimal {
	cacheKey := fmt.Sprintf("shipping:cost:%d", itemID)
	if cached, ok := h.getCached(ctx, cacheKey); ok {
		if cached == "" {
			return h.flatShippingCost(settings)
		}
		if cost, err := decimal.NewFromString(cached); err == nil {
			return &cost
		}
	}

	cost, err := h.storage.GetShippingCost(ctx, itemID)
	if err != nil {
		h.logger.WarnWithContext(ctx, "Ошибка получения стоимости доставки",
			interfaces.LogField{Key: "item_id", Value: itemID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return h.flatShippingCost(settings)
	}

	if cost == nil {
		h.putCached(ctx, cacheKey, "")
		return h.flatShippingCost(settings)
	}

	h.putCached(ctx, cacheKey, cost.String())
	return cost
}

// flatShippingCost возвращает фиксированную стоимость доставки из настроек
func (h *ExportHelper) flatShippingCost(settings *models.Settings) *decimal.Decimal {
	raw := settings.Get(models.SettingShippingFlat)
	if raw == "" {
		return nil
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &cost
}

// GetCountry возвращает код страны доставки в запрошенном ISO-формате
func (h *ExportHelper) GetCountry(settings *models.Settings, isoFormat string) string {
	if isoFormat == "isoCode3" {
		return settings.GetOrDefault(models.SettingCountryISO3, "DEU")
	}
	return settings.GetOrDefault(models.SettingCountryISO2, "DE")
}

// GenerateSKU возвращает артикул варианта для маркетплейса
func (h *ExportHelper) GenerateSKU(v *models.VariationRecord, marketCode float64) string {
	if v.SKU != "" {
		return v.SKU
	}
	return fmt.Sprintf("%d-%d", v.Item.ID, v.ID)
}

// GetItemCharactersByComponent возвращает характеристики товара,
// привязанные к указанному маркетплейсу
func (h *ExportHelper) GetItemCharactersByComponent(d *models.DetailRecord, marketCode float64) []models.Characteristic {
	var chars []models.Characteristic
	for _, char := range d.Properties {
		if char.Market == marketCode {
			chars = append(chars, char)
		}
	}
	return chars
}

// getCached читает значение из локального, затем из общего кэша
func (h *ExportHelper) getCached(ctx context.Context, key string) (string, bool) {
	if value, ok := h.local.Get(key); ok {
		if s, ok := value.(string); ok {
			return s, true
		}
	}

	if h.shared == nil {
		return "", false
	}

	data, err := h.shared.Get(ctx, key)
	if err != nil {
		return "", false
	}

	value := string(data)
	h.local.Set(key, value, gocache.DefaultExpiration)
	return value, true
}

// putCached сохраняет значение в локальный и общий кэш
func (h *ExportHelper) putCached(ctx context.Context, key, value string) {
	h.local.Set(key, value, gocache.DefaultExpiration)

	if h.shared == nil {
		return
	}

	if err := h.shared.Set(ctx, key, []byte(value), sharedCacheTTL); err != nil {
		h.logger.DebugWithContext(ctx, "Ошибка записи в общий кэш",
			interfaces.LogField{Key: "key", Value: key},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
	}
}

// truncate обрезает строку до limit символов с учетом многобайтовых рун
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
