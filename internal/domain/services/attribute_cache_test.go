package services

import (
	"context"
	"errors"
	"testing"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestLoadLinks_OnlyLinkedAttributes(t *testing.T) {
	catalog := &stubCatalog{
		attributes: []models.Attribute{
			{ID: 1, BackendName: "Farbe", MarketplaceKey: "color"},
			{ID: 2, BackendName: "Interne Gruppe", MarketplaceKey: ""},
			{ID: 3, BackendName: "Groesse", MarketplaceKey: "size"},
		},
		values: map[int64][]models.AttributeValue{
			1: {{ID: 101, AttributeID: 1}, {ID: 102, AttributeID: 1}},
			3: {{ID: 301, AttributeID: 3}},
		},
		names: map[int64]string{
			101: "Rot",
			102: "Blau",
			301: "XL",
		},
	}

	cache := NewAttributeLinkCache(catalog, nopLogger{})
	cache.LoadLinks(context.Background(), testSettings(map[string]string{"lang": "de"}))

	assert.Equal(t, 2, cache.LinkedCount())

	key, ok := cache.MarketplaceKey(1)
	assert.True(t, ok)
	assert.Equal(t, "color", key)

	_, ok = cache.MarketplaceKey(2)
	assert.False(t, ok)

	assert.Equal(t, "Rot", cache.ValueName(101))
	assert.Equal(t, "Blau", cache.ValueName(102))
	assert.Equal(t, "XL", cache.ValueName(301))
	assert.Equal(t, "", cache.ValueName(999))
}

func TestLoadLinks_WalksAllPages(t *testing.T) {
	// 120 атрибутов дают трехстраничный обход при размере страницы 50
	var attributes []models.Attribute
	for i := int64(1); i <= 120; i++ {
		attributes = append(attributes, models.Attribute{ID: i, MarketplaceKey: "color"})
	}

	catalog := &stubCatalog{attributes: attributes}
	cache := NewAttributeLinkCache(catalog, nopLogger{})
	cache.LoadLinks(context.Background(), testSettings(nil))

	assert.Equal(t, 120, cache.LinkedCount())
	assert.Equal(t, 3, catalog.listAttributesCalls)
}

func TestLoadLinks_ErrorIsNotFatal(t *testing.T) {
	catalog := &stubCatalog{listAttributesErr: errors.New("index unavailable")}
	cache := NewAttributeLinkCache(catalog, nopLogger{})

	// Ошибка каталога не должна приводить к панике или ошибке запуска
	cache.LoadLinks(context.Background(), testSettings(nil))
	assert.Equal(t, 0, cache.LinkedCount())
}
