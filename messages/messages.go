// Package messages holds the English text for every issue code the
// validators emit. Callers pass the variable parts in data.
package messages

import "fmt"

// Message renders the text for code. Unknown codes render as the code itself.
//
// Keys read from data: "format" (parse_error), "shape" (invalid_shape),
// "field" and "expected" (required, invalid_type, invalid_enum).
func Message(code string, data map[string]string) string {
	switch code {
	case "parse_error":
		return "Invalid " + or(data["format"], "JSON")
	case "invalid_shape":
		return fmt.Sprintf("Invalid %s shape", data["shape"])
	case "required":
		return "Missing field: " + data["field"]
	case "invalid_type":
		return fmt.Sprintf("Invalid type for %s (expected %s)", data["field"], data["expected"])
	case "invalid_enum":
		return fmt.Sprintf("Invalid %s (expected %s)", data["field"], data["expected"])
	}
	return code
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
