package config

import (
	"os"
	"strings"
)

// Properties resolves named configuration values such as "example.env".
//
// A key is looked up as-is, then with every non-alphanumeric character replaced
// by '_', then upper-cased, so "example.env" is satisfied by an EXAMPLE_ENV
// environment variable.
type Properties struct {
	lookup func(string) (string, bool)
}

// EnvProperties resolves properties from the process environment.
func EnvProperties() Properties {
	return Properties{lookup: os.LookupEnv}
}

// MapProperties resolves properties from a fixed map, using the same key mapping.
func MapProperties(values map[string]string) Properties {
	return Properties{lookup: func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}}
}

// Lookup returns the value for key and whether it is set. An empty value counts as set.
func (p Properties) Lookup(key string) (string, bool) {
	if p.lookup == nil {
		return "", false
	}
	for _, candidate := range candidateKeys(key) {
		if v, ok := p.lookup(candidate); ok {
			return v, true
		}
	}
	return "", false
}

func candidateKeys(key string) []string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, key)
	upper := strings.ToUpper(sanitized)

	keys := []string{key}
	if sanitized != key {
		keys = append(keys, sanitized)
	}
	if upper != sanitized {
		keys = append(keys, upper)
	}
	return keys
}
