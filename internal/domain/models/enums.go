package models

// Ключи свойств, распознаваемых маркетплейсом
const (
	PropGender                 = "gender"
	PropAgeGroup               = "age_group"
	PropSizeType               = "size_type"
	PropSizeSystem             = "size_system"
	PropEnergyEfficiencyClass  = "energy_efficiency_class"
	PropExcludedDestination    = "excluded_destination"
	PropAdwordsRedirect        = "adwords_redirect"
	PropMobileLink             = "mobile_link"
	PropSalePriceEffectiveDate = "sale_price_effective_date"
	PropCustomLabel0           = "custom_label_0"
	PropCustomLabel1           = "custom_label_1"
	PropCustomLabel2           = "custom_label_2"
	PropCustomLabel3           = "custom_label_3"
	PropCustomLabel4           = "custom_label_4"
	PropDescription            = "description"
	PropColor                  = "color"
	PropSize                   = "size"
	PropPattern                = "pattern"
	PropMaterial               = "material"
)

// Gender задает допустимое значение поля gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// ParseGender возвращает значение и true, если сырое значение входит
// в список, допустимый маркетплейсом
func ParseGender(raw string) (Gender, bool) {
	switch Gender(raw) {
	case GenderMale, GenderFemale, GenderUnisex:
		return Gender(raw), true
	}
	return "", false
}

// AgeGroup задает допустимое значение поля age_group
type AgeGroup string

const (
	AgeGroupNewborn AgeGroup = "newborn"
	AgeGroupInfant  AgeGroup = "infant"
	AgeGroupToddler AgeGroup = "toddler"
	AgeGroupAdult   AgeGroup = "adult"
	AgeGroupKids    AgeGroup = "kids"
)

// ParseAgeGroup проверяет сырое значение поля age_group
func ParseAgeGroup(raw string) (AgeGroup, bool) {
	switch AgeGroup(raw) {
	case AgeGroupNewborn, AgeGroupInfant, AgeGroupToddler, AgeGroupAdult, AgeGroupKids:
		return AgeGroup(raw), true
	}
	return "", false
}

// SizeType задает допустимое значение поля size_type
type SizeType string

const (
	SizeTypeRegular   SizeType = "regular"
	SizeTypePetite    SizeType = "petite"
	SizeTypePlus      SizeType = "plus"
	SizeTypeMaternity SizeType = "maternity"
)

// ParseSizeType проверяет сырое значение поля size_type
func ParseSizeType(raw string) (SizeType, bool) {
	switch SizeType(raw) {
	case SizeTypeRegular, SizeTypePetite, SizeTypePlus, SizeTypeMaternity:
		return SizeType(raw), true
	}
	return "", false
}

// SizeSystem задает допустимое значение поля size_system
type SizeSystem string

// ParseSizeSystem проверяет сырое значение поля size_system
func ParseSizeSystem(raw string) (SizeSystem, bool) {
	switch raw {
	case "US", "UK", "EU", "DE", "FR", "JP", "CN", "IT", "BR", "MEX", "AU":
		return SizeSystem(raw), true
	}
	return "", false
}

// EnergyClass задает допустимое значение поля energy_efficiency_class
type EnergyClass string

// ParseEnergyClass проверяет сырое значение поля energy_efficiency_class
func ParseEnergyClass(raw string) (EnergyClass, bool) {
	switch raw {
	case "G", "F", "E", "D", "C", "B", "A", "A+", "A++", "A+++":
		return EnergyClass(raw), true
	}
	return "", false
}

// validatedProps сопоставляет ключ свойства с функцией проверки.
// Для остальных ключей любое непустое значение проходит без изменений.
var validatedProps = map[string]func(string) bool{
	PropGender: func(raw string) bool {
		_, ok := ParseGender(raw)
		return ok
	},
	PropAgeGroup: func(raw string) bool {
		_, ok := ParseAgeGroup(raw)
		return ok
	},
	PropSizeType: func(raw string) bool {
		_, ok := ParseSizeType(raw)
		return ok
	},
	PropSizeSystem: func(raw string) bool {
		_, ok := ParseSizeSystem(raw)
		return ok
	},
	PropEnergyEfficiencyClass: func(raw string) bool {
		_, ok := ParseEnergyClass(raw)
		return ok
	},
}

// ValidateProperty проверяет сырое значение свойства по ключу.
// Для ключей с фиксированным списком допустимых значений возвращает
// пустую строку, если значение в список не входит; остальные значения
// проходят без изменений.
func ValidateProperty(key, raw string) string {
	if validate, ok := validatedProps[key]; ok {
		if !validate(raw) {
			return ""
		}
	}
	return raw
}

// ConditionLabel преобразует внутренний код состояния товара в значение
// колонки condition. Неизвестные коды дают пустую строку.
func ConditionLabel(conditionID int) string {
	switch conditionID {
	case 0:
		return "new"
	case 1, 2, 3, 4:
		return "used"
	case 5:
		return "refurbished"
	}
	return ""
}
