package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitAbbreviation(t *testing.T) {
	assert.Equal(t, "ct", UnitAbbreviation(1))
	assert.Equal(t, "kg", UnitAbbreviation(2))
	assert.Equal(t, "g", UnitAbbreviation(3))
	assert.Equal(t, "mg", UnitAbbreviation(4))
	assert.Equal(t, "l", UnitAbbreviation(5))
	assert.Equal(t, "m", UnitAbbreviation(31))
	assert.Equal(t, "ml", UnitAbbreviation(32))
	assert.Equal(t, "sqm", UnitAbbreviation(38))
	assert.Equal(t, "cm", UnitAbbreviation(51))

	assert.Equal(t, "", UnitAbbreviation(0))
	assert.Equal(t, "", UnitAbbreviation(99))
}

func TestUnitPricingMeasure_CommaUnits(t *testing.T) {
	// Граммы форматируются с запятой
	assert.Equal(t, "150,00 g", UnitPricingMeasure(3, 150))
	assert.Equal(t, "500,00 ml", UnitPricingMeasure(32, 500))
	assert.Equal(t, "2,00 ct", UnitPricingMeasure(1, 2))
	assert.Equal(t, "12,50 mg", UnitPricingMeasure(4, 12.5))
}

func TestUnitPricingMeasure_DotUnits(t *testing.T) {
	// Литры, килограммы, метры и кв. метры используют точку
	assert.Equal(t, "1.50 l", UnitPricingMeasure(5, 1.5))
	assert.Equal(t, "2.00 kg", UnitPricingMeasure(2, 2))
	assert.Equal(t, "3.25 m", UnitPricingMeasure(31, 3.25))
	assert.Equal(t, "10.00 sqm", UnitPricingMeasure(38, 10))
}

func TestUnitPricingMeasure_Gates(t *testing.T) {
	// Фасовка считается только при unitID >= 1 и content > 1
	assert.Equal(t, "", UnitPricingMeasure(0, 150))
	assert.Equal(t, "", UnitPricingMeasure(-1, 150))
	assert.Equal(t, "", UnitPricingMeasure(3, 1))
	assert.Equal(t, "", UnitPricingMeasure(3, 0.5))
	assert.Equal(t, "", UnitPricingMeasure(3, 0))

	// Неизвестная единица измерения
	assert.Equal(t, "", UnitPricingMeasure(99, 150))
}

func TestUnitPricingBaseMeasure(t *testing.T) {
	// Граммы и миллилитры до 250 включительно дают базу 100
	assert.Equal(t, "100 g", UnitPricingBaseMeasure(3, 150))
	assert.Equal(t, "100 g", UnitPricingBaseMeasure(3, 250))
	assert.Equal(t, "100 ml", UnitPricingBaseMeasure(32, 200))

	// Свыше 250 единица повышается
	assert.Equal(t, "1 kg", UnitPricingBaseMeasure(3, 251))
	assert.Equal(t, "1 kg", UnitPricingBaseMeasure(3, 1000))
	assert.Equal(t, "1 l", UnitPricingBaseMeasure(32, 500))

	// Остальные единицы дают "1 <единица>"
	assert.Equal(t, "1 l", UnitPricingBaseMeasure(5, 1.5))
	assert.Equal(t, "1 kg", UnitPricingBaseMeasure(2, 2))
	assert.Equal(t, "1 ct", UnitPricingBaseMeasure(1, 6))

	assert.Equal(t, "", UnitPricingBaseMeasure(99, 150))
}

func TestBasePriceComponents(t *testing.T) {
	measure, base := BasePriceComponents(3, 150)
	assert.Equal(t, "150,00 g", measure)
	assert.Equal(t, "100 g", base)

	measure, base = BasePriceComponents(5, 1.5)
	assert.Equal(t, "1.50 l", measure)
	assert.Equal(t, "1 l", base)

	// Базовая мера не заполняется без фасовки
	measure, base = BasePriceComponents(3, 1)
	assert.Equal(t, "", measure)
	assert.Equal(t, "", base)

	measure, base = BasePriceComponents(0, 500)
	assert.Equal(t, "", measure)
	assert.Equal(t, "", base)
}
