package services

import (
	"context"
	"errors"
	"testing"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func testSettings(values map[string]string) *models.Settings {
	if values == nil {
		values = map[string]string{}
	}
	return models.NewSettings(values)
}

func TestGetProperties_FiltersAndBinds(t *testing.T) {
	resolver := NewItemPropertyResolver(&stubSelections{}, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 1, ValueType: "text", Value: "male", Component: "gender"},
		{PropertyID: 2, ValueType: "file", Value: "catalog.pdf", Component: "custom_label_0"},
		{PropertyID: 3, ValueType: "empty", Value: "", Component: "custom_label_1"},
		{PropertyID: 4, ValueType: "text", Value: "unbound", Component: ""},
		{PropertyID: 5, ValueType: "text", Value: "zero-bound", Component: "0"},
		{PropertyID: 6, ValueType: "int", Value: "42", Component: "custom_label_2"},
	}

	properties := resolver.GetProperties(context.Background(), 10, raw, testSettings(nil))

	assert.Equal(t, "male", properties["gender"])
	assert.Equal(t, "42", properties["custom_label_2"])
	assert.NotContains(t, properties, "custom_label_0")
	assert.NotContains(t, properties, "custom_label_1")
	assert.Len(t, properties, 2)
}

func TestGetProperties_LastWriteWins(t *testing.T) {
	resolver := NewItemPropertyResolver(&stubSelections{}, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 1, ValueType: "text", Value: "first", Component: "custom_label_0"},
		{PropertyID: 2, ValueType: "text", Value: "second", Component: "custom_label_0"},
	}

	properties := resolver.GetProperties(context.Background(), 10, raw, testSettings(nil))
	assert.Equal(t, "second", properties["custom_label_0"])
}

func TestGetProperties_ResolvesSelection(t *testing.T) {
	selections := &stubSelections{
		selections: map[int64][]models.PropertySelection{
			7: {
				{ID: 301, PropertyID: 7, Lang: "de", Name: "Rot"},
				{ID: 302, PropertyID: 7, Lang: "de", Name: "Blau"},
			},
		},
	}
	resolver := NewItemPropertyResolver(selections, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 7, ValueType: "selection", Value: "302", Component: "color"},
	}

	properties := resolver.GetProperties(context.Background(), 10, raw, testSettings(map[string]string{"lang": "de"}))
	assert.Equal(t, "Blau", properties["color"])
}

func TestGetProperties_SelectionWithoutMatchDropped(t *testing.T) {
	selections := &stubSelections{
		selections: map[int64][]models.PropertySelection{
			7: {{ID: 301, PropertyID: 7, Lang: "de", Name: "Rot"}},
		},
	}
	resolver := NewItemPropertyResolver(selections, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 7, ValueType: "selection", Value: "999", Component: "color"},
	}

	properties := resolver.GetProperties(context.Background(), 10, raw, testSettings(nil))
	assert.NotContains(t, properties, "color")
}

func TestGetProperties_SelectionErrorIsNotFatal(t *testing.T) {
	selections := &stubSelections{err: errors.New("connection refused")}
	resolver := NewItemPropertyResolver(selections, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 7, ValueType: "selection", Value: "301", Component: "color"},
		{PropertyID: 8, ValueType: "text", Value: "striped", Component: "pattern"},
	}

	properties := resolver.GetProperties(context.Background(), 10, raw, testSettings(nil))
	assert.NotContains(t, properties, "color")
	assert.Equal(t, "striped", properties["pattern"])
}

func TestGetProperties_MemoizedPerItem(t *testing.T) {
	selections := &stubSelections{
		selections: map[int64][]models.PropertySelection{
			7: {{ID: 301, PropertyID: 7, Lang: "de", Name: "Rot"}},
		},
	}
	resolver := NewItemPropertyResolver(selections, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 7, ValueType: "selection", Value: "301", Component: "color"},
	}
	settings := testSettings(map[string]string{"lang": "de"})

	first := resolver.GetProperties(context.Background(), 10, raw, settings)
	second := resolver.GetProperties(context.Background(), 10, raw, settings)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, selections.calls, "повторный вызов должен идти из кэша")
}

func TestGetValidatedProperty(t *testing.T) {
	resolver := NewItemPropertyResolver(&stubSelections{}, nopLogger{})

	raw := []models.Characteristic{
		{PropertyID: 1, ValueType: "text", Value: "male", Component: "gender"},
		{PropertyID: 2, ValueType: "text", Value: "manly", Component: "age_group"},
		{PropertyID: 3, ValueType: "text", Value: "anything goes", Component: "custom_label_0"},
	}
	settings := testSettings(nil)

	// Значение из списка допустимых проходит
	assert.Equal(t, "male", resolver.GetValidatedProperty(context.Background(), 10, raw, "gender", settings))

	// Недопустимое значение подавляется
	assert.Equal(t, "", resolver.GetValidatedProperty(context.Background(), 10, raw, "age_group", settings))

	// Ключи без списка допустимых значений проходят как есть
	assert.Equal(t, "anything goes", resolver.GetValidatedProperty(context.Background(), 10, raw, "custom_label_0", settings))

	// Отсутствующий ключ
	assert.Equal(t, "", resolver.GetValidatedProperty(context.Background(), 10, raw, "size_type", settings))
}
