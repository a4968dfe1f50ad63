package parser

import (
	"strings"

	"travelfuse/internal/domain"
)

// Rule pairs a predicate with the tag it assigns. Rules are evaluated top to
// bottom; the first match wins.
type Rule[T any] struct {
	Match func(lower string) bool
	Tag   T
}

// Table is an ordered rule list with a required default arm.
type Table[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Classify returns the tag of the first rule matching text, else the default.
// text is lower-cased before matching.
func (t Table[T]) Classify(text string) T {
	lower := strings.ToLower(text)
	for _, r := range t.Rules {
		if r.Match(lower) {
			return r.Tag
		}
	}
	return t.Default
}

// Lookup is like Classify but reports whether any rule matched.
func (t Table[T]) Lookup(text string) (T, bool) {
	lower := strings.ToLower(text)
	for _, r := range t.Rules {
		if r.Match(lower) {
			return r.Tag, true
		}
	}
	return t.Default, false
}

// Keywords returns a predicate matching text containing any of words.
func Keywords(words ...string) func(string) bool {
	return func(lower string) bool {
		return containsAny(lower, words)
	}
}

// AccommodationTypeOf classifies a lodging description.
func AccommodationTypeOf(text string) domain.AccommodationType {
	return accommodationTypes.Classify(text)
}

// RestaurantTypeOf classifies a food venue description.
func RestaurantTypeOf(text string) domain.RestaurantType {
	return restaurantTypes.Classify(text)
}

// TransportTypeOf classifies a transport description; ok is false when no
// mode is named.
func TransportTypeOf(text string) (t domain.TransportType, ok bool) {
	return transportTypes.Lookup(text)
}
