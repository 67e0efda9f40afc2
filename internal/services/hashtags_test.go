package services

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{"no tags", "just a plain caption", nil},
		{"single tag", "sunset #photography", []string{"photography"}},
		{"multiple tags", "trip #travel #nature vibes", []string{"travel", "nature"}},
		{"deduplicates", "#go #Go #GO", []string{"go"}},
		{"case insensitive", "hello #world #WORLD", []string{"world"}},
		{"cyrillic", "вид #москва #Москва", []string{"москва"}},
		{"digits and underscore", "#photo_2024", []string{"photo_2024"}},
		{"hash alone ignored", "what # nothing", nil},
		{"keeps first-seen order", "#b #a #b", []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHashtags(tt.caption)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHashtags(%q) = %v, want %v", tt.caption, got, tt.want)
			}
		})
	}
}
