package apidoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type testPet struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name" jsonschema:"required"`
	Category *testCategory `json:"category,omitempty"`
	Tags     []string      `json:"tags"`
}

func TestTypeFormat(t *testing.T) {
	tests := []struct {
		in     string
		typ    string
		format string
		ok     bool
	}{
		{"Long", "integer", "int64", true},
		{"integer", "integer", "int32", true},
		{"double", "number", "double", true},
		{"DateTime", "string", "date-time", true},
		{"String", "string", "", true},
		{"Pet", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ, format, ok := TypeFormat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestSchemaFor(t *testing.T) {
	assert.Equal(t, &Schema{Ref: "#/definitions/Pet"}, SchemaFor("Pet"))
	assert.Equal(t, &Schema{Type: "array", Items: &Schema{Ref: "#/definitions/Pet"}}, SchemaFor("List<Pet>"))
	assert.Equal(t, &Schema{Type: "array", Items: &Schema{Ref: "#/definitions/Tag"}}, SchemaFor("Tag[]"))
	assert.Equal(t, &Schema{Type: "integer", Format: "int64"}, SchemaFor("long"))
}

func TestEchoPath(t *testing.T) {
	assert.Equal(t, "/pet/:petId", EchoPath("/pet/{petId}"))
	assert.Equal(t, "/pet/findByStatus", EchoPath("/pet/findByStatus"))
}

func testBuilder() *Builder {
	return New(Info{Title: "Test", Version: "1.0.0"}, "localhost", "", []string{"http"}).
		Tag("pet", "Everything about your Pets").
		Model(testPet{})
}

func TestBuild(t *testing.T) {
	lo, hi := int64(1), int64(10)

	doc, err := testBuilder().Endpoint(
		Endpoint{
			Method:      "GET",
			Path:        "/pet/{petId}",
			Tag:         "pet",
			OperationID: "getPetById",
			Summary:     "Find pet by ID",
			Produces:    []string{"application/json", "application/xml"},
			Params: []Param{
				{Name: "petId", In: InPath, DataType: "long", Min: &lo, Max: &hi},
			},
			Returns:   "testPet",
			Responses: map[int]string{400: "Invalid ID supplied", 404: "Pet not found"},
		},
		Endpoint{
			Method:      "GET",
			Path:        "/pet/findByTags",
			OperationID: "findPetsByTags",
			Summary:     "Finds Pets by tags",
			Params: []Param{
				{Name: "tags", In: InQuery, DataType: "string", Multiple: true, Required: true},
			},
			Returns:     "testPet",
			ReturnsList: true,
			Deprecated:  true,
		},
		Endpoint{
			Method:      "DELETE",
			Path:        "/pet/{petId}",
			OperationID: "deletePet",
			Summary:     "Deletes a pet",
			Params:      []Param{{Name: "petId", In: InPath, DataType: "long"}},
			APIKey:      true,
		},
		Endpoint{
			Method:      "POST",
			Path:        "/pet",
			OperationID: "addPet",
			Summary:     "Add a new pet to the store",
			Params:      []Param{{Name: "body", In: InBody, DataType: "testPet", Required: true}},
			Responses:   map[int]string{405: "Invalid input"},
		},
	).Build()
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/", doc.BasePath)
	assert.Equal(t, []Tag{{Name: "pet", Description: "Everything about your Pets"}}, doc.Tags)

	get := doc.Paths["/pet/{petId}"]["get"]
	require.NotNil(t, get)
	assert.Equal(t, []string{"pet"}, get.Tags)
	require.Len(t, get.Parameters, 1)
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, "integer", get.Parameters[0].Type)
	assert.Equal(t, "int64", get.Parameters[0].Format)
	assert.Equal(t, &hi, get.Parameters[0].Maximum)
	assert.Equal(t, "successful operation", get.Responses["200"].Description)
	assert.Equal(t, "#/definitions/testPet", get.Responses["200"].Schema.Ref)
	assert.Equal(t, "Pet not found", get.Responses["404"].Description)

	byTags := doc.Paths["/pet/findByTags"]["get"]
	assert.True(t, byTags.Deprecated)
	assert.Equal(t, "array", byTags.Parameters[0].Type)
	assert.Equal(t, "csv", byTags.Parameters[0].CollectionFormat)
	assert.Equal(t, "array", byTags.Responses["200"].Schema.Type)

	del := doc.Paths["/pet/{petId}"]["delete"]
	assert.Equal(t, []map[string][]string{{"api_key": {}}}, del.Security)
	assert.Contains(t, doc.SecurityDefinitions, "api_key")

	add := doc.Paths["/pet"]["post"]
	assert.Equal(t, "#/definitions/testPet", add.Parameters[0].Schema.Ref)
	assert.Equal(t, "Invalid input", add.Responses["405"].Description)

	require.Contains(t, doc.Definitions, "testPet")
	require.Contains(t, doc.Definitions, "testCategory")

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"#/definitions/testCategory"`)
	assert.NotContains(t, string(data), "$defs")
}

func TestBuild_Errors(t *testing.T) {
	ep := Endpoint{Method: "GET", Path: "/pet/{petId}", OperationID: "getPetById", Returns: "testPet"}

	_, err := testBuilder().Endpoint(ep, ep).Build()
	assert.ErrorContains(t, err, "duplicate endpoint")

	ep.Returns = "Unicorn"
	_, err = testBuilder().Endpoint(ep).Build()
	assert.ErrorContains(t, err, "unknown model")
}
