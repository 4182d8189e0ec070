package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msgLength   = "Consider making your password longer (at least 8 characters)."
	msgUpper    = "Try including uppercase letters."
	msgLower    = "Try including lowercase letters."
	msgDigit    = "Try including numbers."
	msgSymbol   = "Try including symbols (e.g., !, @, #)."
	msgCommon   = "Avoid using common passwords like 'password' or '123456'."
	msgKeyboard = "Avoid using keyboard patterns like 'qwerty' or 'asdfgh'."
	msgDate     = "Avoid using easily guessable date patterns."
	msgRepeat   = "Avoid using too many repeated characters (e.g., 'aaa')."
)

func TestCheck_KnownPasswords(t *testing.T) {
	tests := []struct {
		in          string
		score       int
		strength    Strength
		suggestions []string
	}{
		{"", 0, Weak, []string{msgLength, msgUpper, msgLower, msgDigit, msgSymbol}},
		{"Password", -1, Weak, []string{msgDigit, msgSymbol, msgCommon}},
		{"Tr0ub4dor&9", 4, Strong, []string{}},
		{"jan1999qwerty", 1, Weak, []string{msgUpper, msgSymbol, msgKeyboard, msgRepeat}},
		{"Jan1999qwerty", 2, Medium, []string{msgSymbol, msgKeyboard, msgRepeat}},
		{"jan2020abc", 2, Medium, []string{msgUpper, msgSymbol}},
		{"Jan12345", 3, Medium, []string{msgSymbol}},
		{"Mar2000!", 2, Medium, []string{msgDate, msgRepeat}},
		{"qwerty-dec99-aaa", 1, Weak, []string{msgUpper, msgKeyboard, msgDate, msgRepeat}},
		{"aaaaaaaa", 0, Weak, []string{msgUpper, msgDigit, msgSymbol, msgRepeat}},
		{"123456", -2, Weak, []string{msgLength, msgUpper, msgLower, msgSymbol, msgCommon}},
		{"abcdefgh12", 2, Medium, []string{msgUpper, msgSymbol}},
		{"Abcdefgh1!xy", 6, Strong, []string{}},
		{"Abcdefgh1xyz", 5, Strong, []string{msgSymbol}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a := Check(tt.in)
			assert.Equal(t, tt.score, a.Score)
			assert.Equal(t, tt.strength, a.Strength)
			assert.Equal(t, tt.suggestions, a.Suggestions)
			assert.Len(t, a.Codes, len(a.Suggestions))
		})
	}
}

func TestAssessStrength_MatchesEvaluate(t *testing.T) {
	f := ExtractFeatures("Password")
	s, sugg := AssessStrength(f)
	a := Evaluate(f)
	assert.Equal(t, a.Strength, s)
	assert.Equal(t, a.Suggestions, sugg)
}

func TestAssessStrength_Deterministic(t *testing.T) {
	for _, in := range []string{"", "Password", "Jan1999qwerty", "ÄéÖ!!!1", "Tr0ub4dor&9"} {
		s1, g1 := AssessStrength(ExtractFeatures(in))
		s2, g2 := AssessStrength(ExtractFeatures(in))
		assert.Equal(t, s1, s2, in)
		assert.Equal(t, g1, g2, in)
	}
}

func TestEvaluate_CodesFollowRuleOrder(t *testing.T) {
	f := Features{IsCommon: true, HasKeyboardWalk: true, HasDatePattern: true, HasRepeatedChar: true}
	a := Evaluate(f)
	assert.Equal(t, []string{
		CodeLength, CodeUpper, CodeLower, CodeDigit, CodeSymbol,
		CodeCommon, CodeKeyboard, CodeDate, CodeRepeat,
	}, a.Codes)
	assert.Equal(t, -7, a.Score)
	assert.Equal(t, Weak, a.Strength)
}

func TestEvaluate_LengthBands(t *testing.T) {
	tests := []struct {
		length int
		score  int
		msg    bool
	}{
		{0, 0, true},
		{7, 0, true},
		{8, 0, false},
		{11, 0, false},
		{12, 2, false},
		{64, 2, false},
	}
	for _, tt := range tests {
		a := Evaluate(Features{Length: tt.length, HasUpper: true, HasLower: true, HasDigit: true, HasSymbol: true})
		assert.Equal(t, tt.score+4, a.Score, "length %d", tt.length)
		if tt.msg {
			require.NotEmpty(t, a.Suggestions)
			assert.Equal(t, msgLength, a.Suggestions[0])
		} else {
			assert.Empty(t, a.Suggestions)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score int
		want  Strength
	}{
		{-7, Weak}, {0, Weak}, {1, Weak},
		{2, Medium}, {3, Medium},
		{4, Strong}, {6, Strong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %d", tt.score)
	}
}

func TestRules_OneMessagePerCheck(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range rules {
		if r.Message == "" {
			continue
		}
		assert.False(t, seen[r.Code], "duplicate code %s", r.Code)
		seen[r.Code] = true
	}
	assert.Len(t, seen, 9)
}

func TestStrength_Valid(t *testing.T) {
	assert.True(t, Weak.Valid())
	assert.True(t, Medium.Valid())
	assert.True(t, Strong.Valid())
	assert.False(t, Strength("weak").Valid())
	assert.Equal(t, "Strong", Strong.String())
}
