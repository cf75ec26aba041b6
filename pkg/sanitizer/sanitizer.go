package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func NormalizeEmail(email string) string {
	return trimAndLower(email)
}

func NormalizeSkill(skill string) string {
	return Pipeline{trimAndLower, TrimAndNormalize}.Apply(skill)
}

// SplitList splits s on sep and normalizes each item, dropping empties and
// duplicates.
func SplitList(s, sep string, normalizer Strategy) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeStringSlice(strings.Split(s, sep), normalizer)
}
