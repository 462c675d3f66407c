package dialogue

import "strings"

var vocabularyIndex = func() map[string]WeatherType {
	idx := make(map[string]WeatherType, len(Vocabulary))
	for _, t := range Vocabulary {
		idx[string(t)] = t
	}
	return idx
}()

// ExtractTypes returns the tokens naming a weather attribute, in input order.
// Duplicates are kept; an empty result means no weather type was requested.
func ExtractTypes(tokens []string) []WeatherType {
	found := make([]WeatherType, 0)
	for _, token := range tokens {
		if t, ok := vocabularyIndex[strings.ToLower(strings.TrimSpace(token))]; ok {
			found = append(found, t)
		}
	}
	return found
}

// ExtractLocations returns the text of every GPE entity, in order.
func ExtractLocations(entities []Entity) []string {
	places := make([]string, 0)
	for _, entity := range entities {
		if entity.Label == LabelGPE {
			places = append(places, entity.Text)
		}
	}
	return places
}

// HasType reports whether t is present in types.
func HasType(types []WeatherType, t WeatherType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
