package dialog

import "strings"

// languageVocabulary til nomlarini kodga o'tkazish lug'ati, tekshirish
// tartibi qat'iy. Tugma matnidagi bayroq emojilarini ham qamrab oladi.
var languageVocabulary = []struct {
	name string
	code string
}{
	{"oʻzbekcha", "uz"},
	{"o'zbekcha", "uz"},
	{"ozbekcha", "uz"},
	{"uzbek", "uz"},
	{"русский", "ru"},
	{"russian", "ru"},
	{"english", "en"},
}

// matchLanguage matnni til kodiga klassifikatsiya qilish; topilmasa en
func matchLanguage(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, entry := range languageVocabulary {
		if strings.Contains(lowered, entry.name) {
			return entry.code
		}
	}
	return "en"
}
