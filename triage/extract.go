package triage

import "strings"

// ExtractWord pulls the word to score out of mention text: every @handle is
// dropped, then plain words win over hashtags, and a hashtag loses its
// marker. ok is false when nothing usable remains; multiple reports whether
// more than one candidate of the chosen kind was present.
func ExtractWord(text string) (word string, multiple bool, ok bool) {
	cleaned := handlePattern.ReplaceAllString(text, " ")

	var plain, tags []string
	for _, f := range strings.Fields(cleaned) {
		if strings.HasPrefix(f, "#") {
			if tag := strings.TrimPrefix(f, "#"); tag != "" {
				tags = append(tags, tag)
			}
			continue
		}
		plain = append(plain, f)
	}

	if len(plain) > 0 {
		return plain[0], len(plain) > 1, true
	}
	if len(tags) > 0 {
		return tags[0], len(tags) > 1, true
	}
	return "", false, false
}
