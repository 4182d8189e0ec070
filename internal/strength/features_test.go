package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFeatures_Empty(t *testing.T) {
	assert.Equal(t, Features{}, ExtractFeatures(""))
}

func TestExtractFeatures_CharacterClasses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Features
	}{
		{"lower only", "abc", Features{Length: 3, HasLower: true}},
		{"upper only", "ABC", Features{Length: 3, HasUpper: true}},
		{"digits only", "2468", Features{Length: 4, HasDigit: true}},
		{"symbols only", "!@#", Features{Length: 3, HasSymbol: true}},
		{"space is a symbol", "a b", Features{Length: 3, HasLower: true, HasSymbol: true}},
		{"mixed", "Tr0ub4dor&9", Features{Length: 11, HasUpper: true, HasLower: true, HasDigit: true, HasSymbol: true}},
		{"unicode letters", "ÄéÖ", Features{Length: 3, HasUpper: true, HasLower: true}},
		{"arabic-indic digits", "١٢٣٤", Features{Length: 4, HasDigit: true}},
		{"vulgar fraction is numeric, not a symbol", "½", Features{Length: 1}},
		{"emoji is a symbol", "🔒", Features{Length: 1, HasSymbol: true}},
		{"modifier and ordinal letters are lowercase", "ªʰ", Features{Length: 2, HasLower: true}},
		{"circled capital is uppercase and a symbol", "Ⓐ", Features{Length: 1, HasUpper: true, HasSymbol: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFeatures(tt.in))
		})
	}
}

func TestExtractFeatures_LengthCountsRunes(t *testing.T) {
	assert.Equal(t, 5, ExtractFeatures("héllo").Length)
	assert.Equal(t, 2, ExtractFeatures("日本").Length)
}

func TestExtractFeatures_Common(t *testing.T) {
	for _, in := range []string{"password", "Password", "PASSWORD", "123456", "QwErTy"} {
		assert.True(t, ExtractFeatures(in).IsCommon, in)
	}
	for _, in := range []string{"password1", " password", "1234567", "qwert", ""} {
		assert.False(t, ExtractFeatures(in).IsCommon, in)
	}
}

func TestExtractFeatures_KeyboardWalk(t *testing.T) {
	for _, in := range []string{"qwerty", "xxQWERTYxx", "myASDFGH", "zxcvbn123"} {
		assert.True(t, ExtractFeatures(in).HasKeyboardWalk, in)
	}
	for _, in := range []string{"qwert", "asdfg", "zxcvb", "q w e r t y"} {
		assert.False(t, ExtractFeatures(in).HasKeyboardWalk, in)
	}
}

func TestExtractFeatures_DatePattern(t *testing.T) {
	hits := []string{"jan99", "Mar2024", "DEC123", "my-oct12", "x sep07", "nov2020!", "apr1990", "éjan12"}
	for _, in := range hits {
		assert.True(t, ExtractFeatures(in).HasDatePattern, in)
	}
	misses := []string{"jan1", "Xmar12", "1may2020", "june2020", "month", "",
		"Jan1999qwerty", "Jan12345", "jan2020abc", "born_apr1990"}
	for _, in := range misses {
		assert.False(t, ExtractFeatures(in).HasDatePattern, in)
	}
}

func TestExtractFeatures_RepeatedChar(t *testing.T) {
	hits := []string{"aaa", "abbbc", "aaaaaaaa", "11122", "ééé", "!!!", "1999", "2000", "Jan1999qwerty"}
	for _, in := range hits {
		assert.True(t, ExtractFeatures(in).HasRepeatedChar, in)
	}
	misses := []string{"aab", "abab", "aabbaa", "\n\n\n", "a\naa", "", "2024", "1988", "Mar2024"}
	for _, in := range misses {
		assert.False(t, ExtractFeatures(in).HasRepeatedChar, in)
	}
}
