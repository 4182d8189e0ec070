package strength

// Strength is the three-level label produced by the assessor.
type Strength string

const (
	Weak   Strength = "Weak"
	Medium Strength = "Medium"
	Strong Strength = "Strong"
)

func (s Strength) String() string { return string(s) }

// Valid reports whether s is one of the three known labels.
func (s Strength) Valid() bool {
	switch s {
	case Weak, Medium, Strong:
		return true
	}
	return false
}

// Suggestion codes, stable identifiers for the feedback messages.
const (
	CodeLength   = "length"
	CodeUpper    = "upper"
	CodeLower    = "lower"
	CodeDigit    = "digit"
	CodeSymbol   = "symbol"
	CodeCommon   = "common"
	CodeKeyboard = "keyboard_walk"
	CodeDate     = "date_pattern"
	CodeRepeat   = "repeated_char"
)

// Rule is one scoring step. When Match holds, Delta is added to the score
// and Message (if any) is appended to the suggestions.
type Rule struct {
	Code    string
	Match   func(Features) bool
	Delta   int
	Message string
}

// rules is the ordered scoring table. Order is the suggestion order.
var rules = []Rule{
	{CodeLength, func(f Features) bool { return f.Length < 8 }, 0,
		"Consider making your password longer (at least 8 characters)."},
	{"length_bonus", func(f Features) bool { return f.Length >= 12 }, 2, ""},

	{"upper_bonus", func(f Features) bool { return f.HasUpper }, 1, ""},
	{CodeUpper, func(f Features) bool { return !f.HasUpper }, 0, "Try including uppercase letters."},
	{"lower_bonus", func(f Features) bool { return f.HasLower }, 1, ""},
	{CodeLower, func(f Features) bool { return !f.HasLower }, 0, "Try including lowercase letters."},
	{"digit_bonus", func(f Features) bool { return f.HasDigit }, 1, ""},
	{CodeDigit, func(f Features) bool { return !f.HasDigit }, 0, "Try including numbers."},
	{"symbol_bonus", func(f Features) bool { return f.HasSymbol }, 1, ""},
	{CodeSymbol, func(f Features) bool { return !f.HasSymbol }, 0, "Try including symbols (e.g., !, @, #)."},

	{CodeCommon, func(f Features) bool { return f.IsCommon }, -3,
		"Avoid using common passwords like 'password' or '123456'."},
	{CodeKeyboard, func(f Features) bool { return f.HasKeyboardWalk }, -2,
		"Avoid using keyboard patterns like 'qwerty' or 'asdfgh'."},
	{CodeDate, func(f Features) bool { return f.HasDatePattern }, -1,
		"Avoid using easily guessable date patterns."},
	{CodeRepeat, func(f Features) bool { return f.HasRepeatedChar }, -1,
		"Avoid using too many repeated characters (e.g., 'aaa')."},
}

const (
	strongMin = 4
	mediumMin = 2
)

// Classify maps a raw score to a label.
func Classify(score int) Strength {
	switch {
	case score >= strongMin:
		return Strong
	case score >= mediumMin:
		return Medium
	default:
		return Weak
	}
}

// Assessment is the full scoring result for one feature record.
type Assessment struct {
	Strength    Strength `json:"strength"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	Codes       []string `json:"codes"`
	Features    Features `json:"features"`
}

// Evaluate runs the scoring rules over f in order.
func Evaluate(f Features) Assessment {
	a := Assessment{Suggestions: []string{}, Codes: []string{}, Features: f}
	for _, r := range rules {
		if !r.Match(f) {
			continue
		}
		a.Score += r.Delta
		if r.Message != "" {
			a.Suggestions = append(a.Suggestions, r.Message)
			a.Codes = append(a.Codes, r.Code)
		}
	}
	a.Strength = Classify(a.Score)
	return a
}

// AssessStrength returns the label and ordered suggestions for f.
func AssessStrength(f Features) (Strength, []string) {
	a := Evaluate(f)
	return a.Strength, a.Suggestions
}

// Check extracts features from pwd and evaluates them.
func Check(pwd string) Assessment {
	return Evaluate(ExtractFeatures(pwd))
}
