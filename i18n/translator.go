package i18n

// Translator retrieves localized messages for SchemaError codes.
// data provides optional metadata to embed in the message (for example,
// "keyword").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "wrong_family":
			return "スキーマのファミリが一致しません"
		case "unknown_keyword":
			return "未知のキーワードです"
		case "blank_string":
			return "空文字列は許可されていません"
		case "invalid_uri":
			return "URIが不正です"
		case "invalid_uri_reference":
			return "URI参照が不正です"
		case "invalid_anchor":
			return "アンカーが不正です"
		case "invalid_pattern":
			return "正規表現が不正です"
		case "negative_bound":
			return "負の値は許可されていません"
		case "non_positive_bound":
			return "正の値である必要があります"
		case "min_over_max":
			return "最小値が最大値を超えています"
		case "missing_dependency":
			return "依存するキーワードが不足しています"
		case "exclusive_keywords":
			return "同時に指定できないキーワードです"
		case "empty_list":
			return "少なくとも1つの要素が必要です"
		case "duplicate_keyword":
			return "キーワードが重複して指定されています"
		case "unknown_type":
			return "未知のtypeです"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "value has the wrong kind"
		case "wrong_family":
			return "member belongs to the wrong schema family"
		case "unknown_keyword":
			return "unknown keyword"
		case "blank_string":
			return "must be a non-empty string"
		case "invalid_uri":
			return "must be a valid URI"
		case "invalid_uri_reference":
			return "must be a valid URI reference"
		case "invalid_anchor":
			return "must be a valid fragment identifier (no '#')"
		case "invalid_pattern":
			return "must be a valid regular expression"
		case "negative_bound":
			return "must be non-negative"
		case "non_positive_bound":
			return "must be positive"
		case "min_over_max":
			return "minimum cannot be greater than maximum"
		case "missing_dependency":
			return "requires another keyword to be set"
		case "exclusive_keywords":
			return "keywords are mutually exclusive"
		case "empty_list":
			return "must contain at least one entry"
		case "duplicate_keyword":
			return "keyword set more than once"
		case "unknown_type":
			return "unknown type"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to
// the dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
