// Package sources provides the places weather CSV data can be loaded from.
package sources

import (
	"net/http"
	"strings"

	"github.com/i474232898/climatrack/internal/common"
	"github.com/i474232898/climatrack/internal/weather"
)

// Parse turns a location string into a Source: http(s) URLs become an
// HTTPSource, anything else a FileSource.
func Parse(client *http.Client, location string, maxBytes int64) weather.Source {
	location = strings.TrimSpace(location)
	if common.HasAnyPrefix(location, "http://", "https://") {
		return NewHTTPSource(client, location, maxBytes)
	}
	return NewFileSource(location)
}

// ParseAll parses every non-empty location.
func ParseAll(client *http.Client, locations []string, maxBytes int64) []weather.Source {
	var out []weather.Source
	for _, loc := range locations {
		if strings.TrimSpace(loc) == "" {
			continue
		}
		out = append(out, Parse(client, loc, maxBytes))
	}
	return out
}
