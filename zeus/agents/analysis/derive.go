package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxStyleTags = 5

var (
	nonWord       = regexp.MustCompile(`[^\w\s]`)
	imagePromptRe = regexp.MustCompile(`(?i)(style|dress|outfit|color|wearing|fabric|pattern|design|accessories|details)`)
	tagStopWords  = map[string]bool{
		"style": true, "with": true, "that": true, "this": true,
		"your": true, "would": true, "could": true, "should": true,
	}
)

// StyleTags picks up to five keywords from plain (non-heading) lines that
// talk about style, one per line.
func StyleTags(text string) []string {
	tags := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(tags) == MaxStyleTags {
			break
		}
		if !mentionsStyle(line) || strings.Contains(line, "**") || utf8.RuneCountInString(line) >= 100 {
			continue
		}
		for _, w := range strings.Split(nonWord.ReplaceAllString(line, " "), " ") {
			if len(w) > 3 && !tagStopWords[strings.ToLower(w)] {
				tags = append(tags, w)
				break
			}
		}
	}
	return tags
}

func mentionsStyle(line string) bool {
	return strings.Contains(line, "style") || strings.Contains(line, "Style") ||
		strings.Contains(line, "look") || strings.Contains(line, "fashion")
}

const (
	imagePromptTemplate = "A high quality fashion photography of %s. Professional fashion photography, studio lighting, " +
		"high resolution, photorealistic, detailed texture, fashion editorial style, clean background, perfect composition."
	genericImagePrompt = "A high quality fashion photography of stylish clothing and accessories. Professional fashion " +
		"photography, studio lighting, high resolution, photorealistic, fashion editorial style."
)

// ImagePrompt turns an analysis into a text-to-image prompt from its first
// five lines that describe the garment.
func ImagePrompt(text string) string {
	picked := make([]string, 0, 5)
	for _, line := range strings.Split(text, "\n") {
		if len(picked) == 5 {
			break
		}
		if imagePromptRe.MatchString(line) {
			picked = append(picked, strings.TrimSpace(strings.ReplaceAll(line, "**", "")))
		}
	}
	if len(picked) == 0 {
		return genericImagePrompt
	}
	return fmt.Sprintf(imagePromptTemplate, strings.Join(picked, ". "))
}

type AspectRatio struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var AspectRatios = []AspectRatio{
	{"1:1", 1024, 1024},
	{"4:3", 1024, 768},
	{"16:9", 1024, 576},
	{"3:4", 768, 1024},
	{"9:16", 576, 1024},
}

// Dimensions maps an aspect ratio id to pixel size; unknown ids are square.
func Dimensions(ratio string) (int, int) {
	for _, r := range AspectRatios {
		if r.ID == ratio {
			return r.Width, r.Height
		}
	}
	return 1024, 1024
}
