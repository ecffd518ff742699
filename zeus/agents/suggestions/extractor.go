// Package suggestions derives follow-up prompts from model output and keeps
// the rotating window of prompts shown above the chat thread.
package suggestions

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxExtracted caps the prompts derived from one response.
	MaxExtracted = 12
	// MaxPool caps the merged assistant pool.
	MaxPool = 24

	maxLineLen     = 90
	minFallbackLen = 10
	minParagraph   = 20
)

var (
	reHeading  = regexp.MustCompile(`^#{1,4}\s+`)
	reBullet   = regexp.MustCompile(`^[-*•]\s+`)
	reSentence = regexp.MustCompile(`[.;]`)
)

// Extract turns freeform markdown into at most MaxExtracted short prompts.
//
// Headings (1-4 '#') and bullets ('-', '*', '•') of up to 90 characters are
// taken with their markers and bold removed. When there are none, the first
// line longer than 20 characters is split on '.' and ';' and fragments of
// 11-89 characters are used instead.
func Extract(text string) []string {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return []string{}
	}

	var candidates []string
	for _, line := range lines {
		isHeading := reHeading.MatchString(line)
		isBullet := reBullet.MatchString(line)
		if !(isHeading || isBullet) || runeLen(line) > maxLineLen {
			continue
		}
		cleaned := reHeading.ReplaceAllString(line, "")
		cleaned = reBullet.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "**", ""))
		if cleaned != "" {
			candidates = append(candidates, cleaned)
		}
	}

	if len(candidates) == 0 {
		candidates = sentenceFragments(lines)
	}

	return truncate(Dedupe(candidates), MaxExtracted)
}

func sentenceFragments(lines []string) []string {
	var para string
	for _, l := range lines {
		if runeLen(l) > minParagraph {
			para = l
			break
		}
	}
	var out []string
	for _, frag := range reSentence.Split(para, -1) {
		frag = strings.TrimSpace(frag)
		if n := runeLen(frag); n > minFallbackLen && n < maxLineLen {
			out = append(out, frag)
		}
	}
	return out
}

// Dedupe drops case-insensitive repeats, keeping the first spelling seen.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonBlankLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
