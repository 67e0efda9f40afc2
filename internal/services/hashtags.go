package services

import (
	"regexp"
	"strings"
)

// Matches #-prefixed runs of Latin word characters and Cyrillic letters.
var hashtagPattern = regexp.MustCompile(`#[\wа-яА-ЯёЁ]+`)

// ExtractHashtags returns the distinct lowercase hashtag tokens embedded in
// caption, in order of first appearance.
func ExtractHashtags(caption string) []string {
	matches := hashtagPattern.FindAllString(caption, -1)

	seen := make(map[string]struct{}, len(matches))
	var tags []string

	for _, match := range matches {
		tag := strings.ToLower(strings.TrimPrefix(match, "#"))

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}
