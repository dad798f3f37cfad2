package events

import "reflect"

// ExtractTableID returns the TableID field of an event, or "" when it has none
func ExtractTableID(event Event) string {
	return extractStringField(event, "TableID")
}

// ExtractHandID returns the HandID field of an event, or "" when it has none
func ExtractHandID(event Event) string {
	return extractStringField(event, "HandID")
}

// ExtractPlayerName returns the PlayerName field of an event, or "" when it has none
func ExtractPlayerName(event Event) string {
	return extractStringField(event, "PlayerName")
}

func extractStringField(event Event, field string) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return ""
	}

	f := val.FieldByName(field)
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}

	return ""
}
