package booking

import "strings"

// categoryCeilings caps group sizes for class types that need smaller
// groups regardless of what the session row says.
var categoryCeilings = map[string]int{
	"pilates": 5,
	"yoga":    10,
}

// EffectiveCapacity is the group size used by the allocator:
// min(session capacity, category ceiling) when a ceiling exists.
func EffectiveCapacity(category string, sessionCapacity int) int {
	if ceiling, ok := categoryCeilings[strings.ToLower(strings.TrimSpace(category))]; ok {
		if ceiling < sessionCapacity {
			return ceiling
		}
	}
	return sessionCapacity
}
