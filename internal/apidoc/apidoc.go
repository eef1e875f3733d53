// Package apidoc assembles the Swagger 2.0 document that describes the
// HTTP API.
//
// Routes are described by Endpoint values. Builder converts their
// parameters and responses into Swagger objects and derives the model
// definitions from Go types with invopop/jsonschema.
package apidoc

import "github.com/invopop/jsonschema"

// SwaggerVersion is the value of the document's "swagger" field.
const SwaggerVersion = "2.0"

// Document is a Swagger 2.0 object.
type Document struct {
	Swagger             string                        `json:"swagger"`
	Info                Info                          `json:"info"`
	Host                string                        `json:"host,omitempty"`
	BasePath            string                        `json:"basePath"`
	Tags                []Tag                         `json:"tags"`
	Schemes             []string                      `json:"schemes"`
	Paths               map[string]PathItem           `json:"paths"`
	SecurityDefinitions map[string]SecurityScheme     `json:"securityDefinitions,omitempty"`
	Definitions         map[string]*jsonschema.Schema `json:"definitions"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

type Operation struct {
	Tags        []string              `json:"tags,omitempty"`
	Summary     string                `json:"summary"`
	Description string                `json:"description,omitempty"`
	OperationID string                `json:"operationId"`
	Consumes    []string              `json:"consumes,omitempty"`
	Produces    []string              `json:"produces,omitempty"`
	Parameters  []Parameter           `json:"parameters"`
	Responses   map[string]Response   `json:"responses"`
	Deprecated  bool                  `json:"deprecated,omitempty"`
	Security    []map[string][]string `json:"security,omitempty"`
}

// Parameter is a Swagger parameter object. Body parameters carry a Schema,
// all others a Type.
type Parameter struct {
	Name             string   `json:"name"`
	In               string   `json:"in"`
	Description      string   `json:"description,omitempty"`
	Required         bool     `json:"required"`
	Type             string   `json:"type,omitempty"`
	Format           string   `json:"format,omitempty"`
	Items            *Items   `json:"items,omitempty"`
	CollectionFormat string   `json:"collectionFormat,omitempty"`
	Enum             []string `json:"enum,omitempty"`
	Default          string   `json:"default,omitempty"`
	Minimum          *int64   `json:"minimum,omitempty"`
	Maximum          *int64   `json:"maximum,omitempty"`
	Schema           *Schema  `json:"schema,omitempty"`
}

// Items describes the elements of an array parameter.
type Items struct {
	Type    string   `json:"type"`
	Format  string   `json:"format,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Default string   `json:"default,omitempty"`
}

type Response struct {
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
}

// Schema is the subset of schema objects used in parameters and responses.
type Schema struct {
	Ref    string  `json:"$ref,omitempty"`
	Type   string  `json:"type,omitempty"`
	Format string  `json:"format,omitempty"`
	Items  *Schema `json:"items,omitempty"`
}

type SecurityScheme struct {
	Type string `json:"type"`
	Name string `json:"name"`
	In   string `json:"in"`
}
