package models

import "github.com/shopspring/decimal"

// DetailRecord содержит авторитетные данные по варианту из вторичного слоя
// данных (цены, остатки, сырые характеристики). Ключ соединения:
// VariationID.
type DetailRecord struct {
	VariationID int64 `json:"variation_id"`
	ItemID      int64 `json:"item_id"`

	RetailPrice       decimal.Decimal `json:"retail_price"`
	VATValue          decimal.Decimal `json:"vat_value"`
	RecommendedPrice  decimal.Decimal `json:"recommended_price"`
	SpecialOfferPrice decimal.Decimal `json:"special_offer_price"`

	StockNet int `json:"stock_net"`

	// Properties содержит сырой список характеристик товара до привязки
	// к ключам маркетплейса
	Properties []Characteristic `json:"properties,omitempty"`
}

// Characteristic представляет одну сырую характеристику товара.
// Component содержит ключ поля маркетплейса ("gender", "custom_label_0"
// и т.д.); пустое значение означает, что характеристика не привязана
// к экспорту.
type Characteristic struct {
	PropertyID int64   `json:"property_id"`
	ValueType  string  `json:"value_type"` // "text", "selection", "int", "float", "file", "empty"
	Value      string  `json:"value"`
	Component  string  `json:"component,omitempty"`
	Market     float64 `json:"market"` // номер маркетплейса, к которому привязана характеристика
}

// DetailFilter задает необязательный фильтр при выборке детальных данных
type DetailFilter struct {
	OnlyInStock  bool  `json:"only_in_stock,omitempty"`
	MinStock     int   `json:"min_stock,omitempty"`
	CategoryID   int64 `json:"category_id,omitempty"`
	SupplierID   int64 `json:"supplier_id,omitempty"`
	OnlyWithSKU  bool  `json:"only_with_sku,omitempty"`
	IncludeBulky bool  `json:"include_bulky,omitempty"`
}
