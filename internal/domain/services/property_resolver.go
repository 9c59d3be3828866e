package services

import (
	"context"
	"strconv"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
)

// Типы значений характеристик, исключаемые из экспорта
const (
	valueTypeFile      = "file"
	valueTypeEmpty     = "empty"
	valueTypeSelection = "selection"
)

// ItemPropertyResolver строит и кэширует по товару карту
// "ключ маркетплейса -> значение". Кэш живет один запуск экспорта.
type ItemPropertyResolver struct {
	selections PropertySelectionPort
	logger     interfaces.LoggerPort

	cache map[int64]map[string]string
}

// NewItemPropertyResolver создает новый резолвер свойств товара
func NewItemPropertyResolver(selections PropertySelectionPort, logger interfaces.LoggerPort) *ItemPropertyResolver {
	return &ItemPropertyResolver{
		selections: selections,
		logger:     logger,
		cache:      make(map[int64]map[string]string),
	}
}

// GetProperties возвращает карту свойств товара с мемоизацией по itemID.
// Записи типов "file"/"empty" и без привязки отбрасываются, тип "selection"
// разрешается через справочник. При совпадении ключей побеждает последняя запись.
func (r *ItemPropertyResolver) GetProperties(ctx context.Context, itemID int64, raw []models.Characteristic, settings *models.Settings) map[string]string {
	if cached, ok := r.cache[itemID]; ok {
		return cached
	}

	list := make(map[string]string)

	for _, char := range raw {
		if char.ValueType == valueTypeFile || char.ValueType == valueTypeEmpty {
			continue
		}
		if char.Component == "" || char.Component == "0" {
			continue
		}

		if char.ValueType == valueTypeSelection {
			if name := r.resolveSelection(ctx, char, settings); name != "" {
				list[char.Component] = name
			}
			continue
		}

		list[char.Component] = char.Value
	}

	r.cache[itemID] = list
	return list
}

// resolveSelection находит локализованное имя значения свойства типа
// "selection". Ошибка справочника трактуется как отсутствие данных.
func (r *ItemPropertyResolver) resolveSelection(ctx context.Context, char models.Characteristic, settings *models.Settings) string {
	selections, err := r.selections.ListSelections(ctx, char.PropertyID, settings.Lang())
	if err != nil {
		r.logger.WarnWithContext(ctx, "Не удалось получить значения свойства, характеристика пропущена",
			interfaces.LogField{Key: "property_id", Value: char.PropertyID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return ""
	}

	for _, selection := range selections {
		if strconvID(selection.ID) == char.Value && selection.Lang == settings.Lang() {
			return selection.Name
		}
	}
	return ""
}

// GetValidatedProperty возвращает значение свойства по ключу с проверкой
// допустимых значений маркетплейса. Отсутствующее или недопустимое
// значение дает пустую строку.
func (r *ItemPropertyResolver) GetValidatedProperty(ctx context.Context, itemID int64, raw []models.Characteristic, key string, settings *models.Settings) string {
	properties := r.GetProperties(ctx, itemID, raw, settings)

	value, ok := properties[key]
	if !ok {
		return ""
	}
	return models.ValidateProperty(key, value)
}

// strconvID приводит идентификатор к строковому виду, в котором значения
// типа "selection" хранятся в сырой характеристике
func strconvID(id int64) string {
	return strconv.FormatInt(id, 10)
}
