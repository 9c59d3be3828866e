package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/athebyme/googleshopping-feed/internal/domain/models"
	"github.com/athebyme/googleshopping-feed/internal/utils"
	"github.com/athebyme/googleshopping-feed/pkg/interfaces"
	"github.com/shopspring/decimal"
)

// GoogleShoppingMarket задает номер маркетплейса Google Shopping во внешних справочниках
const GoogleShoppingMarket = 7.00

// Форматы кодов стран для стоимости доставки
const (
	ISOCode2 = "isoCode2"
	ISOCode3 = "isoCode3"
)

// Ограничения длины текстовых полей фида
const (
	maxTitleLength       = 256
	maxDescriptionLength = 5000
)

// runState описывает состояние конечного автомата одного запуска экспорта.
// Переходы только вперед: Idle -> AttributesLoaded -> Joined -> Emitting -> Done.
type runState int

const (
	stateIdle runState = iota
	stateAttributesLoaded
	stateJoined
	stateEmitting
	stateDone
)

func (s runState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAttributesLoaded:
		return "attributes_loaded"
	case stateJoined:
		return "joined"
	case stateEmitting:
		return "emitting"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// RunSummary содержит итоги одного запуска генерации фида
type RunSummary struct {
	Total   int `json:"total"`   // записей во входном пакете
	Emitted int `json:"emitted"` // выпущено строк фида
	Skipped int `json:"skipped"` // пропущено из-за отсутствия детальных данных
}

// FeedGenerator строит по одной строке фида из 39 колонок на каждый
// вариант пакета. Один экземпляр обслуживает ровно один запуск,
// все кэши принадлежат ему и не разделяются между запусками.
type FeedGenerator struct {
	helper     ExportHelperPort
	attributes *AttributeLinkCache
	properties *ItemPropertyResolver
	join       *DetailJoin
	logger     interfaces.LoggerPort

	state runState
}

// NewFeedGenerator создает движок генерации фида для одного запуска
func NewFeedGenerator(
	helper ExportHelperPort,
	attributes *AttributeLinkCache,
	properties *ItemPropertyResolver,
	join *DetailJoin,
	logger interfaces.LoggerPort,
) *FeedGenerator {
	return &FeedGenerator{
		helper:     helper,
		attributes: attributes,
		properties: properties,
		join:       join,
		logger:     logger,
		state:      stateIdle,
	}
}

// Generate выполняет один запуск экспорта. Варианты без детальной
// записи молча пропускаются, пустой пакет дает файл из одного заголовка.
func (g *FeedGenerator) Generate(
	ctx context.Context,
	batch []*models.VariationRecord,
	settings *models.Settings,
	filter *models.DetailFilter,
	writer interfaces.FeedWriterPort,
) (*RunSummary, error) {
	if g.state != stateIdle {
		return nil, fmt.Errorf("%w: generate вызван в состоянии %s", utils.ErrInvalidRunState, g.state)
	}

	summary := &RunSummary{Total: len(batch)}

	g.attributes.LoadLinks(ctx, settings)
	g.state = stateAttributesLoaded

	variationIDs := make([]int64, 0, len(batch))
	for _, variation := range batch {
		variationIDs = append(variationIDs, variation.ID)
	}

	if err := g.join.Build(ctx, variationIDs, settings, filter); err != nil {
		return nil, err
	}
	g.state = stateJoined

	if err := writer.WriteHeader(models.FeedHeader()); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовка фида: %w", err)
	}

	g.state = stateEmitting
	for _, variation := range batch {
		detail, ok := g.join.Get(variation.ID)
		if !ok {
			summary.Skipped++
			continue
		}

		row := g.buildRow(ctx, variation, detail, settings)
		if err := writer.WriteRow(row.Values()); err != nil {
			return nil, fmt.Errorf("ошибка записи строки фида: %w", err)
		}
		summary.Emitted++
	}
	g.state = stateDone

	if err := writer.Flush(); err != nil {
		return nil, fmt.Errorf("ошибка сброса буфера фида: %w", err)
	}

	return summary, nil
}

// buildRow вычисляет все 39 полей строки фида для одного варианта
func (g *FeedGenerator) buildRow(ctx context.Context, v *models.VariationRecord, detail *models.DetailRecord, settings *models.Settings) *models.FeedRow {
	chars := g.helper.GetItemCharactersByComponent(detail, GoogleShoppingMarket)

	price := detail.RetailPrice.StringFixed(2)
	salePrice := g.salePrice(detail, settings)
	shipping := g.shipping(ctx, v, settings)
	measure, baseMeasure := BasePriceComponents(v.Unit.ID, v.Unit.Content)
	attributes := g.variationAttributes(ctx, v, chars, settings)

	imageLink := ""
	if images := g.helper.GetImageList(v, settings); len(images) > 0 {
		imageLink = images[0]
	}

	property := func(key string) string {
		return g.properties.GetValidatedProperty(ctx, v.Item.ID, chars, key, settings)
	}

	return &models.FeedRow{
		ID:                     g.helper.GenerateSKU(v, GoogleShoppingMarket),
		Title:                  g.helper.GetName(v, settings, maxTitleLength),
		Description:            g.description(ctx, v, chars, settings),
		GoogleProductCategory:  g.helper.GetCategoryMarketplace(ctx, v.DefaultCategoryID, settings.ChannelID(), GoogleShoppingMarket),
		ProductType:            g.helper.GetCategory(ctx, v.DefaultCategoryID, settings.Lang(), settings.ChannelID()),
		Link:                   g.helper.GetURL(v, settings),
		ImageLink:              imageLink,
		Condition:              models.ConditionLabel(v.Item.ConditionID),
		Availability:           g.helper.GetAvailability(v, settings),
		Price:                  price,
		SalePrice:              salePrice,
		Brand:                  g.helper.GetExternalManufacturerName(ctx, v.Item.ManufacturerID),
		GTIN:                   g.helper.GetBarcodeByType(v, settings.BarcodeType()),
		ISBN:                   g.helper.GetBarcodeByType(v, models.BarcodeISBN),
		MPN:                    v.Data.Model,
		Color:                  attributes[models.PropColor],
		Size:                   attributes[models.PropSize],
		Material:               attributes[models.PropMaterial],
		Pattern:                attributes[models.PropPattern],
		ItemGroupID:            strconv.FormatInt(v.Item.ID, 10),
		Shipping:               shipping,
		ShippingWeight:         strconv.Itoa(v.Data.WeightG) + " g",
		Gender:                 property(models.PropGender),
		AgeGroup:               property(models.PropAgeGroup),
		ExcludedDestination:    property(models.PropExcludedDestination),
		AdwordsRedirect:        property(models.PropAdwordsRedirect),
		IdentifierExists:       g.identifierExists(ctx, v, settings),
		UnitPricingMeasure:     measure,
		UnitPricingBaseMeasure: baseMeasure,
		EnergyEfficiencyClass:  property(models.PropEnergyEfficiencyClass),
		SizeSystem:             property(models.PropSizeSystem),
		SizeType:               property(models.PropSizeType),
		MobileLink:             property(models.PropMobileLink),
		SalePriceEffectiveDate: property(models.PropSalePriceEffectiveDate),
		Adult:                  "",
		CustomLabel0:           property(models.PropCustomLabel0),
		CustomLabel1:           property(models.PropCustomLabel1),
		CustomLabel2:           property(models.PropCustomLabel2),
		CustomLabel3:           property(models.PropCustomLabel3),
		CustomLabel4:           property(models.PropCustomLabel4),
	}
}

// salePrice возвращает цену по акции. Значение, равное или превышающее
// розничную цену, либо неположительное, подавляется пустой строкой.
func (g *FeedGenerator) salePrice(detail *models.DetailRecord, settings *models.Settings) string {
	sale := g.helper.GetSpecialPrice(detail, settings)

	if sale.GreaterThanOrEqual(detail.RetailPrice) || sale.LessThanOrEqual(decimal.Zero) {
		return ""
	}
	return sale.StringFixed(2)
}

// shipping возвращает колонку shipping в формате "<iso2>:::<cost>" или
// пустую строку, если стоимость доставки не настроена
func (g *FeedGenerator) shipping(ctx context.Context, v *models.VariationRecord, settings *models.Settings) string {
	cost := g.helper.GetShippingCost(ctx, v.Item.ID, settings)
	if cost == nil {
		return ""
	}
	return g.helper.GetCountry(settings, ISOCode2) + ":::" + cost.StringFixed(2)
}

// description предпочитает характеристику товара "description";
// при ее отсутствии берется описание из помощника экспорта
func (g *FeedGenerator) description(ctx context.Context, v *models.VariationRecord, chars []models.Characteristic, settings *models.Settings) string {
	properties := g.properties.GetProperties(ctx, v.Item.ID, chars, settings)
	if description := properties[models.PropDescription]; description != "" {
		return description
	}
	return g.helper.GetDescription(v, settings, maxDescriptionLength)
}

// variationAttributes разрешает color/size/pattern/material с приоритетом:
// сначала проверенное свойство товара, затем локализованное значение
// привязанного атрибута, в конце пустая строка
func (g *FeedGenerator) variationAttributes(ctx context.Context, v *models.VariationRecord, chars []models.Characteristic, settings *models.Settings) map[string]string {
	fromAttributes := make(map[string][]string)
	for _, link := range v.Attributes {
		key, ok := g.attributes.MarketplaceKey(link.AttributeID)
		if !ok || key == "" {
			continue
		}
		if name := g.attributes.ValueName(link.ValueID); name != "" {
			fromAttributes[key] = append(fromAttributes[key], name)
		}
	}

	result := make(map[string]string, 4)
	for _, key := range []string{models.PropColor, models.PropSize, models.PropPattern, models.PropMaterial} {
		if property := strings.TrimSpace(g.properties.GetValidatedProperty(ctx, v.Item.ID, chars, key, settings)); property != "" {
			result[key] = property
			continue
		}
		if values := fromAttributes[key]; len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			result[key] = strings.TrimSpace(values[0])
			continue
		}
		result[key] = ""
	}

	return result
}

// identifierExists возвращает "true", если выполняются минимум два из
// трех признаков: есть модель, есть распознанный штрихкод, есть имя
// производителя
func (g *FeedGenerator) identifierExists(ctx context.Context, v *models.VariationRecord, settings *models.Settings) string {
	count := 0

	if len(v.Data.Model) > 0 {
		count++
	}

	if g.helper.GetBarcodeByType(v, settings.BarcodeType()) != "" ||
		g.helper.GetBarcodeByType(v, models.BarcodeISBN) != "" {
		count++
	}

	if g.helper.GetExternalManufacturerName(ctx, v.Item.ManufacturerID) != "" {
		count++
	}

	if count >= 2 {
		return "true"
	}
	return "false"
}
