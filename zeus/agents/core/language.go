package core

import (
	"regexp"
	"strings"
)

// Script ranges are checked before the Latin accent classes; within each
// group the first match wins.
var languagePatterns = []struct {
	code string
	re   *regexp.Regexp
}{
	{"si", regexp.MustCompile(`[අ-ෆ]`)},
	{"ta", regexp.MustCompile(`[அ-ஹ]`)},
	{"hi", regexp.MustCompile(`[ऀ-ॿ]`)},
	{"ja", regexp.MustCompile(`[ぁ-ゟ゠-ヿ]`)},
	{"ko", regexp.MustCompile(`[가-힣]`)},
	{"ru", regexp.MustCompile(`[А-Яа-я]`)},
	{"es", regexp.MustCompile(`(?i)[áíóúñü¿¡]`)},
	{"fr", regexp.MustCompile(`(?i)[éçâêûôàèùëïœæ]`)},
	{"de", regexp.MustCompile(`(?i)[äöß]`)},
}

// DetectLanguage guesses a language code from the characters in text.
// Blank text and text with no telltale characters are English.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}
	for _, p := range languagePatterns {
		if p.re.MatchString(text) {
			return p.code
		}
	}
	return "en"
}
