package apidoc

import (
	"regexp"
	"strings"
)

// typeFormats maps parameter data types to Swagger (type, format) pairs.
var typeFormats = map[string][2]string{
	"integer":  {"integer", "int32"},
	"long":     {"integer", "int64"},
	"float":    {"number", "float"},
	"double":   {"number", "double"},
	"string":   {"string", ""},
	"byte":     {"string", "byte"},
	"binary":   {"string", "binary"},
	"boolean":  {"boolean", ""},
	"date":     {"string", "date"},
	"datetime": {"string", "date-time"},
	"password": {"string", "password"},
}

// TypeFormat returns the Swagger type and format for a primitive data type
// name, compared case-insensitively. ok is false for model types.
func TypeFormat(dataType string) (typ, format string, ok bool) {
	pair, ok := typeFormats[strings.ToLower(strings.TrimSpace(dataType))]
	return pair[0], pair[1], ok
}

var containerRe = regexp.MustCompile(`^(?:List<(\w+)>|(\w+)\[.*\])$`)

// SchemaFor returns the schema for a data type: a primitive, a reference
// to a model definition, or an array of either for "List<T>" and "T[]".
func SchemaFor(dataType string) *Schema {
	dataType = strings.TrimSpace(dataType)

	if m := containerRe.FindStringSubmatch(dataType); m != nil {
		elem := m[1]
		if elem == "" {
			elem = m[2]
		}
		return &Schema{Type: "array", Items: SchemaFor(elem)}
	}

	if typ, format, ok := TypeFormat(dataType); ok {
		return &Schema{Type: typ, Format: format}
	}
	return &Schema{Ref: DefinitionRef(dataType)}
}

// DefinitionRef is the JSON reference of a model definition.
func DefinitionRef(name string) string {
	return "#/definitions/" + name
}
