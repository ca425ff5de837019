package i18n

import "strings"

// Message keys for the built-in rules. Keys without a suffix are the generic
// forms; suffixed keys specialize a rule for one kind.
const (
	KeyRequired       = "required"
	KeyOptional       = "optional"
	KeyInvalidType    = "invalid_type"
	KeyNotString      = "invalid_type.string"
	KeyNotNumber      = "invalid_type.number"
	KeyNotInteger     = "invalid_type.integer"
	KeyNotBoolean     = "invalid_type.boolean"
	KeyNotArray       = "invalid_type.array"
	KeyNotObject      = "invalid_type.object"
	KeyStringTooShort = "too_short.string"
	KeyStringTooLong  = "too_long.string"
	KeyArrayTooShort  = "too_short.array"
	KeyArrayTooLong   = "too_long.array"
	KeyTooSmall       = "too_small"
	KeyTooBig         = "too_big"
	KeyInvalidEnum    = "invalid_enum"
	KeyPattern        = "pattern"
	KeyUnknownKey     = "unknown_key"
)

// Translator retrieves localized message templates for rule keys.
// data provides values substituted for {placeholders} (for example, "min" or
// "values"). Templates may also contain the %name, %type, %value and %length
// placeholders that are resolved against the failing value later on.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		KeyRequired:       "%name is not optional",
		KeyOptional:       "%name is optional",
		KeyInvalidType:    "%name has an invalid type (found: %type)",
		KeyNotString:      "%name is not a string (found: %type)",
		KeyNotNumber:      "%name is not a number (found: %type)",
		KeyNotInteger:     "%name is not an integer (found: %type)",
		KeyNotBoolean:     "%name is not a boolean (found: %type)",
		KeyNotArray:       "%name is not an array (found: %type)",
		KeyNotObject:      "%name is not an object (found: %type)",
		KeyStringTooShort: "%name string length must be >= {min} (found: %length)",
		KeyStringTooLong:  "%name string length must be <= {max} (found: %length)",
		KeyArrayTooShort:  "%name array length must be >= {min} (found: %length)",
		KeyArrayTooLong:   "%name array length must be <= {max} (found: %length)",
		KeyTooSmall:       "%name must be >= {min} (found: %value)",
		KeyTooBig:         "%name must be <= {max} (found: %value)",
		KeyInvalidEnum:    "%name must be one of {values}",
		KeyPattern:        "%name does not match regular expression: {pattern}",
		KeyUnknownKey:     "%name is not a known property",
	},
	"ja": {
		KeyRequired:       "%name は省略できません",
		KeyOptional:       "%name は省略可能です",
		KeyInvalidType:    "%name の型が不正です (実際: %type)",
		KeyNotString:      "%name は文字列ではありません (実際: %type)",
		KeyNotNumber:      "%name は数値ではありません (実際: %type)",
		KeyNotInteger:     "%name は整数ではありません (実際: %type)",
		KeyNotBoolean:     "%name は真偽値ではありません (実際: %type)",
		KeyNotArray:       "%name は配列ではありません (実際: %type)",
		KeyNotObject:      "%name はオブジェクトではありません (実際: %type)",
		KeyStringTooShort: "%name の文字列長は {min} 以上である必要があります (実際: %length)",
		KeyStringTooLong:  "%name の文字列長は {max} 以下である必要があります (実際: %length)",
		KeyArrayTooShort:  "%name の要素数は {min} 以上である必要があります (実際: %length)",
		KeyArrayTooLong:   "%name の要素数は {max} 以下である必要があります (実際: %length)",
		KeyTooSmall:       "%name は {min} 以上である必要があります (実際: %value)",
		KeyTooBig:         "%name は {max} 以下である必要があります (実際: %value)",
		KeyInvalidEnum:    "%name は {values} のいずれかである必要があります",
		KeyPattern:        "%name は正規表現 {pattern} に一致しません",
		KeyUnknownKey:     "%name は未知のプロパティです",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		// fall back to the generic form of a specialized key
		if i := strings.IndexByte(code, '.'); i > 0 {
			msg, ok = dictionaries[t.lang][code[:i]]
		}
	}
	if !ok {
		return code
	}
	return Fill(msg, data)
}

// Fill substitutes {key} placeholders in msg with values from data.
func Fill(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
