package services

import (
	"context"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/athebyme/googleshopping-feed/pkg/utils"
)

// AttributeLinkCache хранит привязки атрибутов к полям маркетплейса
// и локализованные имена значений. Заполняется один раз на запуск.
type AttributeLinkCache struct {
	catalog AttributeCatalogPort
	logger  interfaces.LoggerPort

	// linked: ID атрибута -> имя поля маркетплейса (color/size/pattern/material)
	linked map[int64]string
	// valueNames: ID значения атрибута -> локализованное имя
	valueNames map[int64]string
}

// NewAttributeLinkCache создает новый кэш привязок атрибутов
func NewAttributeLinkCache(catalog AttributeCatalogPort, logger interfaces.LoggerPort) *AttributeLinkCache {
	return &AttributeLinkCache{
		catalog:    catalog,
		logger:     logger,
		linked:     make(map[int64]string),
		valueNames: make(map[int64]string),
	}
}

// LoadLinks постранично обходит каталог атрибутов и загружает значения
// привязанных атрибутов. Ошибки коллабораторов не прерывают запуск.
func (c *AttributeLinkCache) LoadLinks(ctx context.Context, settings *models.Settings) {
	err := utils.WalkPages(ctx, utils.DefaultPageSize,
		func(ctx context.Context, page, pageSize int) ([]models.Attribute, error) {
			return c.catalog.ListAttributes(ctx, page, pageSize)
		},
		func(attribute models.Attribute) error {
			if attribute.MarketplaceKey == "" {
				return nil
			}
			c.linked[attribute.ID] = attribute.MarketplaceKey
			c.loadValueNames(ctx, attribute.ID, settings)
			return nil
		},
	)
	if err != nil {
		c.logger.WarnWithContext(ctx, "Обход каталога атрибутов прерван, часть привязок будет отсутствовать",
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
	}

	c.logger.InfoWithContext(ctx, "Кэш привязок атрибутов загружен",
		interfaces.LogField{Key: "linked_attributes", Value: len(c.linked)},
		interfaces.LogField{Key: "value_names", Value: len(c.valueNames)},
	)
}

// loadValueNames загружает локализованные имена всех значений атрибута
func (c *AttributeLinkCache) loadValueNames(ctx context.Context, attributeID int64, settings *models.Settings) {
	err := utils.WalkPages(ctx, utils.DefaultPageSize,
		func(ctx context.Context, page, pageSize int) ([]models.AttributeValue, error) {
			return c.catalog.ListAttributeValues(ctx, attributeID, page, pageSize)
		},
		func(value models.AttributeValue) error {
			name, err := c.catalog.GetAttributeValueName(ctx, value.ID, settings.Lang())
			if err != nil {
				// Отсутствие имени не фатально для экспорта
				return nil
			}
			if name != "" {
				c.valueNames[value.ID] = name
			}
			return nil
		},
	)
	if err != nil {
		c.logger.WarnWithContext(ctx, "Обход значений атрибута прерван",
			interfaces.LogField{Key: "attribute_id", Value: attributeID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
	}
}

// MarketplaceKey возвращает имя поля маркетплейса для атрибута и признак привязки
func (c *AttributeLinkCache) MarketplaceKey(attributeID int64) (string, bool) {
	key, ok := c.linked[attributeID]
	return key, ok
}

// ValueName возвращает локализованное имя значения атрибута
func (c *AttributeLinkCache) ValueName(valueID int64) string {
	return c.valueNames[valueID]
}

// LinkedCount возвращает число атрибутов с привязкой к маркетплейсу
func (c *AttributeLinkCache) LinkedCount() int {
	return len(c.linked)
}
