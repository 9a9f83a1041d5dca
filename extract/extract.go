// Package extract pulls canonical Go values out of the workspace API's
// per-field tagged-union properties. Absent fields, mistyped fields, and nil
// payloads all yield the field's empty value; extraction never fails the
// whole record.
package extract

import (
	"log"

	"folio/notionapi"
)

// Value returns the named property's canonical value: a string for the text,
// date, select, status, created-time and file tags, a []string for
// multi-select, or nil when the field is absent, mistyped, or empty.
func Value(props map[string]notionapi.Property, name string) (v any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Error extracting property %q: %v", name, r)
			v = nil
		}
	}()

	if props == nil {
		return nil
	}
	prop, ok := props[name]
	if !ok {
		return nil
	}

	switch prop.Type {
	case "title":
		return Text(prop.Title)
	case "rich_text":
		return Text(prop.RichText)
	case "date":
		if prop.Date == nil || prop.Date.Start == "" {
			return nil
		}
		return prop.Date.Start
	case "select":
		if prop.Select == nil || prop.Select.Name == "" {
			return nil
		}
		return prop.Select.Name
	case "status":
		if prop.Status == nil || prop.Status.Name == "" {
			return nil
		}
		return prop.Status.Name
	case "multi_select":
		names := make([]string, 0, len(prop.MultiSelect))
		for _, opt := range prop.MultiSelect {
			if opt.Name != "" {
				names = append(names, opt.Name)
			}
		}
		return names
	case "files":
		if len(prop.Files) == 0 {
			return nil
		}
		if u := prop.Files[0].URL(); u != "" {
			return u
		}
		return nil
	case "created_time":
		if prop.CreatedTime == "" {
			return nil
		}
		return prop.CreatedTime
	default:
		return nil
	}
}

// String returns the named property as a string, or "" when it is absent or
// not string-shaped.
func String(props map[string]notionapi.Property, name string) string {
	s, _ := Value(props, name).(string)
	return s
}

// StringList returns the named property as a list of strings. Never nil.
func StringList(props map[string]notionapi.Property, name string) []string {
	if l, ok := Value(props, name).([]string); ok {
		return l
	}
	return []string{}
}

// Text concatenates the plain text of each run in order. An empty or nil run
// slice yields "".
func Text(runs []notionapi.RichText) string {
	var out string
	for _, run := range runs {
		out += run.PlainText
	}
	return out
}
