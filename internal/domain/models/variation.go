package models

// VariationRecord представляет один вариант товара (SKU) в том виде,
// в котором его отдает поисковый индекс. Снимок неизменяем на время
// одного запуска экспорта.
type VariationRecord struct {
	ID   int64         `json:"id"`
	Item ItemData      `json:"item"`
	Data VariationData `json:"variation"`
	Unit UnitData      `json:"unit"`

	// Attributes содержит привязки значений атрибутов к данному варианту
	Attributes []AttributeValueLink `json:"attributes,omitempty"`

	// Barcodes содержит штрихкоды варианта по типам (GTIN, ISBN и т.д.)
	Barcodes []Barcode `json:"barcodes,omitempty"`

	// Images содержит URL изображений в порядке их позиций
	Images []string `json:"images,omitempty"`

	// SKU содержит уже сгенерированный артикул для маркетплейса, если есть
	SKU string `json:"sku,omitempty"`

	// DefaultCategoryID содержит ID основной категории товара
	DefaultCategoryID int64 `json:"default_category_id"`
}

// ItemData описывает родительский товар варианта
type ItemData struct {
	ID             int64  `json:"id"`
	ManufacturerID int64  `json:"manufacturer_id"`
	ConditionID    int    `json:"condition_id"` // код состояния товара (conditionApi)
	Name           string `json:"name"`
	Description    string `json:"description"`
	URLPath        string `json:"url_path"`
}

// VariationData описывает собственные поля варианта
type VariationData struct {
	Model          string `json:"model"` // модель/артикул производителя (mpn)
	Name           string `json:"name"`
	WeightG        int    `json:"weight_g"`
	AvailabilityID int    `json:"availability_id"`
}

// UnitData описывает единицу измерения и фасовку варианта
type UnitData struct {
	ID      int     `json:"id"`
	Content float64 `json:"content"` // количество в единице измерения
}

// AttributeValueLink связывает вариант со значением атрибута
type AttributeValueLink struct {
	AttributeID int64 `json:"attribute_id"`
	ValueID     int64 `json:"value_id"`
}

// Barcode представляет штрихкод варианта определенного типа
type Barcode struct {
	Type string `json:"type"` // "GTIN", "ISBN", "UPC" и т.д.
	Code string `json:"code"`
}

// Attribute представляет атрибут из каталога атрибутов.
// MarketplaceKey заполнен только для атрибутов, явно привязанных
// к полю маркетплейса (color/size/pattern/material).
type Attribute struct {
	ID             int64  `json:"id"`
	BackendName    string `json:"backend_name"`
	MarketplaceKey string `json:"marketplace_key,omitempty"`
}

// AttributeValue представляет одно значение атрибута
type AttributeValue struct {
	ID          int64 `json:"id"`
	AttributeID int64 `json:"attribute_id"`
	Position    int   `json:"position"`
}

// PropertySelection представляет локализованное значение свойства
// типа "selection"
type PropertySelection struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	Lang       string `json:"lang"`
	Name       string `json:"name"`
}
