package models

import "strconv"

// Ключи настроек запуска экспорта
const (
	SettingLang           = "lang"
	SettingChannelID      = "channel_id"
	SettingBarcodeType    = "barcode"
	SettingCountryISO2    = "country_iso2"
	SettingCountryISO3    = "country_iso3"
	SettingBaseURL        = "base_url"
	SettingImageBaseURL   = "image_base_url"
	SettingShippingFlat   = "shipping_flat_cost"
	SettingStockInText    = "availability_in_stock"
	SettingStockOutText   = "availability_out_of_stock"
	SettingStockPreorder  = "availability_preorder"
	SettingOutputFileName = "output_file"
)

// BarcodeISBN задает тип штрихкода ISBN, всегда проверяется для колонки isbn
const BarcodeISBN = "ISBN"

// Settings представляет неизменяемый набор настроек одного запуска экспорта.
// Собирается один раз и передается по ссылке во все шаги деривации;
// ядро его никогда не мутирует.
type Settings struct {
	values map[string]string
}

// NewSettings создает настройки из карты ключ/значение.
// Входная карта копируется, чтобы гарантировать неизменяемость.
func NewSettings(values map[string]string) *Settings {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Settings{values: copied}
}

// Get возвращает значение настройки или пустую строку
func (s *Settings) Get(key string) string {
	return s.values[key]
}

// GetOrDefault возвращает значение настройки или значение по умолчанию
func (s *Settings) GetOrDefault(key, def string) string {
	if v, ok := s.values[key]; ok && v != "" {
		return v
	}
	return def
}

// GetInt возвращает целочисленное значение настройки, 0 если не число
func (s *Settings) GetInt(key string) int {
	n, err := strconv.Atoi(s.values[key])
	if err != nil {
		return 0
	}
	return n
}

// Lang возвращает язык запуска (по умолчанию "de")
func (s *Settings) Lang() string {
	return s.GetOrDefault(SettingLang, "de")
}

// ChannelID возвращает идентификатор канала/площадки
func (s *Settings) ChannelID() int {
	return s.GetInt(SettingChannelID)
}

// BarcodeType возвращает предпочитаемый тип штрихкода для колонки gtin
func (s *Settings) BarcodeType() string {
	return s.GetOrDefault(SettingBarcodeType, "GTIN")
}
