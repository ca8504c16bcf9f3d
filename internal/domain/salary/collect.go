package salary

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func NormalizeMonth(raw string) (string, bool) {
	candidate := cases.Title(language.English).String(strings.TrimSpace(raw))
	if candidate == "" {
		return "", false
	}
	for m := time.January; m <= time.December; m++ {
		if m.String() == candidate {
			return candidate, true
		}
	}
	return "", false
}
