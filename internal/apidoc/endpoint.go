package apidoc

import (
	"regexp"
)

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InBody     = "body"
	InFormData = "formData"
)

// Param describes one operation parameter.
type Param struct {
	Name        string
	In          string
	DataType    string
	Description string
	Required    bool

	// Multiple marks a comma separated list of DataType values.
	Multiple bool
	Enum     []string
	Default  string
	Min, Max *int64
}

// Endpoint describes one route for the document.
type Endpoint struct {
	Method      string
	Path        string // Swagger style, e.g. /pet/{petId}
	Tag         string
	OperationID string
	Summary     string
	Description string
	Consumes    []string
	Produces    []string
	Params      []Param

	// Returns names the success body type; ReturnsList wraps it in an array.
	Returns     string
	ReturnsList bool

	// Responses maps status codes to their descriptions.
	Responses map[int]string

	Deprecated bool

	// APIKey marks routes guarded by the api_key header.
	APIKey bool
}

var pathParamRe = regexp.MustCompile(`\{(\w+)\}`)

// EchoPath converts /pet/{petId} into Echo's /pet/:petId.
func EchoPath(path string) string {
	return pathParamRe.ReplaceAllString(path, ":$1")
}
