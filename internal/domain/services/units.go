package services

import (
	"strconv"
	"strings"
)

// Идентификаторы единиц измерения, пересчитываемых в большую фасовку
const (
	unitIDGram       = 3
	unitIDMilliliter = 32
)

// UnitAbbreviation возвращает обозначение единицы измерения, допустимое
// для маркетплейса. Неизвестные идентификаторы дают пустую строку.
func UnitAbbreviation(unitID int) string {
	switch unitID {
	case 1:
		return "ct" // штука
	case 2:
		return "kg" // килограмм
	case 3:
		return "g" // грамм
	case 4:
		return "mg" // миллиграмм
	case 5:
		return "l" // литр
	case 31:
		return "m" // метр
	case 32:
		return "ml" // миллилитр
	case 38:
		return "sqm" // квадратный метр
	case 51:
		return "cm" // сантиметр
	}
	return ""
}

// UnitPricingMeasure возвращает фасовку варианта для колонки
// unit_pricing_measure. Значение считается только при unitID >= 1 и
// content > 1. Для единиц {5, 2, 31, 38} используется десятичная точка,
// для остальных известных единиц берется запятая (соглашение локали маркетплейса).
func UnitPricingMeasure(unitID int, content float64) string {
	if unitID < 1 || content <= 1 {
		return ""
	}

	abbr := UnitAbbreviation(unitID)
	if abbr == "" {
		return ""
	}

	formatted := strconv.FormatFloat(content, 'f', 2, 64)

	switch unitID {
	case 5, 2, 31, 38:
		return formatted + " " + abbr
	default:
		return strings.Replace(formatted, ".", ",", 1) + " " + abbr
	}
}

// UnitPricingBaseMeasure возвращает базовую меру для колонки
// unit_pricing_base_measure: по умолчанию "1 <единица>"; для граммов и
// миллилитров при фасовке до 250 включительно это "100 <единица>", при
// большей фасовке единица повышается до кг/л.
func UnitPricingBaseMeasure(unitID int, content float64) string {
	abbr := UnitAbbreviation(unitID)
	if abbr == "" {
		return ""
	}

	if unitID == unitIDGram || unitID == unitIDMilliliter {
		if content <= 250 {
			return "100 " + abbr
		}
		if abbr == "g" {
			return "1 kg"
		}
		return "1 l"
	}

	return "1 " + abbr
}

// BasePriceComponents возвращает пару (unit_pricing_measure,
// unit_pricing_base_measure). Базовая мера заполняется только когда
// заполнена фасовка.
func BasePriceComponents(unitID int, content float64) (measure, baseMeasure string) {
	measure = UnitPricingMeasure(unitID, content)
	if measure != "" {
		baseMeasure = UnitPricingBaseMeasure(unitID, content)
	}
	return measure, baseMeasure
}
