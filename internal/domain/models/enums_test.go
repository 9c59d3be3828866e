package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProperty_EnumeratedKeys(t *testing.T) {
	cases := []struct {
		key  string
		raw  string
		want string
	}{
		{PropGender, "male", "male"},
		{PropGender, "female", "female"},
		{PropGender, "unisex", "unisex"},
		{PropGender, "manly", ""},
		{PropAgeGroup, "newborn", "newborn"},
		{PropAgeGroup, "adult", "adult"},
		{PropAgeGroup, "senior", ""},
		{PropSizeType, "regular", "regular"},
		{PropSizeType, "maternity", "maternity"},
		{PropSizeType, "slim", ""},
		{PropSizeSystem, "DE", "DE"},
		{PropSizeSystem, "MEX", "MEX"},
		{PropSizeSystem, "XX", ""},
		{PropEnergyEfficiencyClass, "A+++", "A+++"},
		{PropEnergyEfficiencyClass, "G", "G"},
		{PropEnergyEfficiencyClass, "H", ""},
	}
	for _, tc := range cases {
		t.Run(tc.key+"/"+tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateProperty(tc.key, tc.raw))
		})
	}
}

func TestValidateProperty_FreeFormKeysPassThrough(t *testing.T) {
	assert.Equal(t, "Sommer", ValidateProperty(PropCustomLabel0, "Sommer"))
	assert.Equal(t, "https://m.example/p/1", ValidateProperty(PropMobileLink, "https://m.example/p/1"))
}

func TestConditionLabel(t *testing.T) {
	assert.Equal(t, "new", ConditionLabel(0))
	for id := 1; id <= 4; id++ {
		assert.Equal(t, "used", ConditionLabel(id))
	}
	assert.Equal(t, "refurbished", ConditionLabel(5))
	assert.Equal(t, "", ConditionLabel(9))
	assert.Equal(t, "", ConditionLabel(-1))
}
