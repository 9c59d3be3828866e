package models

// FeedRow представляет одну строку фида с фиксированным набором из 39 колонок.
// Порядок полей структуры совпадает с порядком колонок фида и
// гарантируется на этапе компиляции, а не порядком вставки в карту.
type FeedRow struct {
	ID                     string
	Title                  string
	Description            string
	GoogleProductCategory  string
	ProductType            string
	Link                   string
	ImageLink              string
	Condition              string
	Availability           string
	Price                  string
	SalePrice              string
	Brand                  string
	GTIN                   string
	ISBN                   string
	MPN                    string
	Color                  string
	Size                   string
	Material               string
	Pattern                string
	ItemGroupID            string
	Shipping               string
	ShippingWeight         string
	Gender                 string
	AgeGroup               string
	ExcludedDestination    string
	AdwordsRedirect        string
	IdentifierExists       string
	UnitPricingMeasure     string
	UnitPricingBaseMeasure string
	EnergyEfficiencyClass  string
	SizeSystem             string
	SizeType               string
	MobileLink             string
	SalePriceEffectiveDate string
	Adult                  string
	CustomLabel0           string
	CustomLabel1           string
	CustomLabel2           string
	CustomLabel3           string
	CustomLabel4           string
}

// FeedHeader возвращает имена колонок фида в фиксированном порядке
func FeedHeader() []string {
	return []string{
		"id",
		"title",
		"description",
		"google_product_category",
		"product_type",
		"link",
		"image_link",
		"condition",
		"availability",
		"price",
		"sale_price",
		"brand",
		"gtin",
		"isbn",
		"mpn",
		"color",
		"size",
		"material",
		"pattern",
		"item_group_id",
		"shipping",
		"shipping_weight",
		"gender",
		"age_group",
		"excluded_destination",
		"adwords_redirect",
		"identifier_exists",
		"unit_pricing_measure",
		"unit_pricing_base_measure",
		"energy_efficiency_class",
		"size_system",
		"size_type",
		"mobile_link",
		"sale_price_effective_date",
		"adult",
		"custom_label_0",
		"custom_label_1",
		"custom_label_2",
		"custom_label_3",
		"custom_label_4",
	}
}

// Values возвращает значения полей строки в порядке колонок фида
func (r *FeedRow) Values() []string {
	return []string{
		r.ID,
		r.Title,
		r.Description,
		r.GoogleProductCategory,
		r.ProductType,
		r.Link,
		r.ImageLink,
		r.Condition,
		r.Availability,
		r.Price,
		r.SalePrice,
		r.Brand,
		r.GTIN,
		r.ISBN,
		r.MPN,
		r.Color,
		r.Size,
		r.Material,
		r.Pattern,
		r.ItemGroupID,
		r.Shipping,
		r.ShippingWeight,
		r.Gender,
		r.AgeGroup,
		r.ExcludedDestination,
		r.AdwordsRedirect,
		r.IdentifierExists,
		r.UnitPricingMeasure,
		r.UnitPricingBaseMeasure,
		r.EnergyEfficiencyClass,
		r.SizeSystem,
		r.SizeType,
		r.MobileLink,
		r.SalePriceEffectiveDate,
		r.Adult,
		r.CustomLabel0,
		r.CustomLabel1,
		r.CustomLabel2,
		r.CustomLabel3,
		r.CustomLabel4,
	}
}
