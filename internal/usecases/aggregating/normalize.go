package aggregating

import (
	"strings"
	"time"
)

// Unknown substitui valores de dimensão ausentes ou sem significado
const Unknown = "Unknown"

var unknownValues = map[string]struct{}{
	"":                 {},
	"(not set)":        {},
	"(not applicable)": {},
	"null":             {},
}

// NormalizeDimension colapsa valores vazios, "(not set)", "(Not applicable)" e "null" em Unknown
func NormalizeDimension(value string) string {
	trimmed := strings.TrimSpace(value)
	if _, ok := unknownValues[strings.ToLower(trimmed)]; ok {
		return Unknown
	}
	return trimmed
}

var dateLayouts = []string{time.DateOnly, "20060102", "01/02/2006", "2006/01/02"}

// NormalizeDate devolve a data no formato YYYY-MM-DD, ou "" quando não reconhecida
func NormalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}
