package apidoc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

const apiKeySecurity = "api_key"

// Builder collects tags, models and endpoints into a Document.
type Builder struct {
	info     Info
	host     string
	basePath string
	schemes  []string

	tags      []Tag
	models    []any
	endpoints []Endpoint
}

func New(info Info, host, basePath string, schemes []string) *Builder {
	if basePath == "" {
		basePath = "/"
	}
	return &Builder{
		info:     info,
		host:     host,
		basePath: basePath,
		schemes:  schemes,
	}
}

// Tag adds a top-level tag.
func (b *Builder) Tag(name, description string) *Builder {
	b.tags = append(b.tags, Tag{Name: name, Description: description})
	return b
}

// Model adds the definitions reflected from v and the types it refers to.
func (b *Builder) Model(v any) *Builder {
	b.models = append(b.models, v)
	return b
}

func (b *Builder) Endpoint(endpoints ...Endpoint) *Builder {
	b.endpoints = append(b.endpoints, endpoints...)
	return b
}

// Build assembles the document. It fails on duplicate routes and on
// references to models that were never added.
func (b *Builder) Build() (*Document, error) {
	doc := &Document{
		Swagger:  SwaggerVersion,
		Info:     b.info,
		Host:     b.host,
		BasePath: b.basePath,
		Tags:     append([]Tag{}, b.tags...),
		Schemes:  append([]string{}, b.schemes...),
		Paths:    make(map[string]PathItem),
	}

	doc.Definitions = b.definitions()

	for _, ep := range b.endpoints {
		method := strings.ToLower(ep.Method)

		item, ok := doc.Paths[ep.Path]
		if !ok {
			item = make(PathItem)
			doc.Paths[ep.Path] = item
		}
		if _, dup := item[method]; dup {
			return nil, fmt.Errorf("duplicate endpoint %s %s", ep.Method, ep.Path)
		}

		op := convertOperation(ep)
		if err := checkRefs(op, doc.Definitions); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ep.Method, ep.Path, err)
		}
		item[method] = op

		if ep.APIKey && doc.SecurityDefinitions == nil {
			doc.SecurityDefinitions = map[string]SecurityScheme{
				apiKeySecurity: {Type: "apiKey", Name: apiKeySecurity, In: InHeader},
			}
		}
	}

	return doc, nil
}

func convertOperation(ep Endpoint) *Operation {
	op := &Operation{
		Summary:     ep.Summary,
		Description: ep.Description,
		OperationID: ep.OperationID,
		Consumes:    ep.Consumes,
		Produces:    ep.Produces,
		Parameters:  convertParameters(ep.Params),
		Responses:   convertResponses(ep),
		Deprecated:  ep.Deprecated,
	}
	if ep.Tag != "" {
		op.Tags = []string{ep.Tag}
	}
	if ep.APIKey {
		op.Security = []map[string][]string{{apiKeySecurity: {}}}
	}
	return op
}

func convertParameters(params []Param) []Parameter {
	out := make([]Parameter, 0, len(params))

	for _, p := range params {
		param := Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required || p.In == InPath,
			Minimum:     p.Min,
			Maximum:     p.Max,
		}

		typ, format, primitive := TypeFormat(p.DataType)

		switch {
		case p.In == InBody || !primitive:
			param.Schema = SchemaFor(p.DataType)

		case p.Multiple:
			param.Type = "array"
			param.Items = &Items{Type: typ, Format: format, Enum: p.Enum, Default: p.Default}
			param.CollectionFormat = "csv"

		default:
			param.Type = typ
			param.Format = format
			param.Enum = p.Enum
			param.Default = p.Default
		}

		out = append(out, param)
	}
	return out
}

// convertResponses describes each listed status. A declared return type
// adds the 200 "successful operation" response.
func convertResponses(ep Endpoint) map[string]Response {
	responses := make(map[string]Response, len(ep.Responses)+1)
	for code, description := range ep.Responses {
		responses[strconv.Itoa(code)] = Response{Description: description}
	}

	if ep.Returns != "" {
		schema := SchemaFor(ep.Returns)
		if ep.ReturnsList {
			schema = &Schema{Type: "array", Items: schema}
		}
		responses["200"] = Response{Description: "successful operation", Schema: schema}
	} else if _, ok := responses["200"]; !ok {
		responses["200"] = Response{Description: "successful operation"}
	}

	return responses
}

// definitions reflects every model and rewrites jsonschema's $defs
// references to Swagger's #/definitions.
func (b *Builder) definitions() map[string]*jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}

	defs := make(map[string]*jsonschema.Schema)
	for _, model := range b.models {
		root := r.Reflect(model)
		for name, schema := range root.Definitions {
			rewriteRefs(schema)
			defs[name] = schema
		}
	}
	return defs
}

func rewriteRefs(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	if name, ok := strings.CutPrefix(s.Ref, "#/$defs/"); ok {
		s.Ref = DefinitionRef(name)
	}

	rewriteRefs(s.Items)
	rewriteRefs(s.AdditionalProperties)
	for _, sub := range s.AllOf {
		rewriteRefs(sub)
	}
	for _, sub := range s.AnyOf {
		rewriteRefs(sub)
	}
	for _, sub := range s.OneOf {
		rewriteRefs(sub)
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			rewriteRefs(pair.Value)
		}
	}
}

func checkRefs(op *Operation, defs map[string]*jsonschema.Schema) error {
	var schemas []*Schema
	for _, p := range op.Parameters {
		schemas = append(schemas, p.Schema)
	}
	codes := make([]string, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		schemas = append(schemas, op.Responses[code].Schema)
	}

	for _, s := range schemas {
		for s != nil {
			if name, ok := strings.CutPrefix(s.Ref, "#/definitions/"); ok {
				if _, found := defs[name]; !found {
					return fmt.Errorf("unknown model %q", name)
				}
			}
			s = s.Items
		}
	}
	return nil
}
