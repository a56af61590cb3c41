package matchstats

import "strings"

// DetectPrefix reports whether columns hold paired home/away metrics: at least
// one name starts with "home_" and at least one starts with "away_".
func DetectPrefix(columns []string) bool {
	var home, away bool
	for _, name := range columns {
		switch {
		case strings.HasPrefix(name, HomePrefix):
			home = true
		case strings.HasPrefix(name, AwayPrefix):
			away = true
		}
		if home && away {
			return true
		}
	}
	return false
}

// MissingSidePairs returns the metrics among names for which the wide columns
// lack the home_ or the away_ variant.
func MissingSidePairs(columns []string, names ...string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, name := range names {
		_, home := present[HomePrefix+name]
		_, away := present[AwayPrefix+name]
		if !home || !away {
			missing = append(missing, name)
		}
	}
	return missing
}
