package gen

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-openapi/spec"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/griffnb/ts-swag/internal/domain"
)

// assemble builds the Swagger 2.0 document from resolved routes. Body
// schemas become named definitions referenced from body parameters;
// query, header, and path schemas flatten into per-field parameters.
func assemble(config *Config, searchDirs []string, routes []*domain.RouteInfo) *spec.Swagger {
	swagger := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: SupportedOpenAPIVersion,
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       documentTitle(config, searchDirs),
					Version:     config.Version,
					Description: config.Description,
				},
			},
			Host:        config.Host,
			BasePath:    config.BasePath,
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: make(spec.Definitions),
		},
	}
	if swagger.Info.Version == "" {
		swagger.Info.Version = "1.0.0"
	}

	for _, route := range routes {
		operation := buildOperation(route, swagger.Definitions)

		pathItem := swagger.Paths.Paths[route.Path]
		switch route.Method {
		case "GET":
			pathItem.Get = operation
		case "POST":
			pathItem.Post = operation
		case "PUT":
			pathItem.Put = operation
		case "DELETE":
			pathItem.Delete = operation
		case "PATCH":
			pathItem.Patch = operation
		case "OPTIONS":
			pathItem.Options = operation
		case "HEAD":
			pathItem.Head = operation
		}
		swagger.Paths.Paths[route.Path] = pathItem
	}

	return swagger
}

// documentTitle falls back to a title-cased name derived from the first
// search directory when no title is configured.
func documentTitle(config *Config, searchDirs []string) string {
	if config.Title != "" {
		return config.Title
	}

	name := "API"
	if len(searchDirs) > 0 {
		base := filepath.Base(searchDirs[0])
		if base != "." && base != string(filepath.Separator) {
			name = cases.Title(language.English).String(base) + " API"
		}
	}
	return name
}

func buildOperation(route *domain.RouteInfo, definitions spec.Definitions) *spec.Operation {
	operation := &spec.Operation{
		OperationProps: spec.OperationProps{
			Responses: &spec.Responses{
				ResponsesProps: spec.ResponsesProps{
					StatusCodeResponses: make(map[int]spec.Response),
				},
			},
		},
	}

	if route.Body != nil {
		operation.Parameters = append(operation.Parameters, spec.Parameter{
			ParamProps: spec.ParamProps{
				Name:     "body",
				In:       "body",
				Required: true,
				Schema:   definitionRef(route.Body, definitions),
			},
		})
	}

	operation.Parameters = append(operation.Parameters, flattenParameters(route.Query, "query")...)
	operation.Parameters = append(operation.Parameters, flattenParameters(route.Headers, "header")...)
	operation.Parameters = append(operation.Parameters, pathParameters(route)...)

	for status, schema := range route.Responses {
		response := spec.Response{
			ResponseProps: spec.ResponseProps{
				Description: http.StatusText(status),
			},
		}
		if schema != nil {
			response.Schema = definitionRef(schema, definitions)
		}
		operation.Responses.StatusCodeResponses[status] = response
	}

	if len(operation.Responses.StatusCodeResponses) == 0 {
		operation.Responses.StatusCodeResponses[200] = spec.Response{
			ResponseProps: spec.ResponseProps{Description: "OK"},
		}
	}

	return operation
}

// definitionRef registers the schema under its declaration name and
// returns a $ref to it. Distinct schemas sharing a name are suffixed
// with a counter so neither definition is silently overwritten.
func definitionRef(schema *domain.ObjectSchema, definitions spec.Definitions) *spec.Schema {
	name := schema.Name
	if name == "" {
		name = "InlineSchema"
	}

	built := objectSpecSchema(schema)

	base := name
	for i := 2; ; i++ {
		existing, ok := definitions[name]
		if !ok {
			definitions[name] = built
			break
		}
		if equalSchemas(existing, built) {
			break
		}
		name = fmt.Sprintf("%s%d", base, i)
	}

	ref := spec.RefSchema("#/definitions/" + name)
	return ref
}

func equalSchemas(a, b spec.Schema) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// objectSpecSchema converts a canonical object schema to a Swagger
// object schema with properties and a required list.
func objectSpecSchema(schema *domain.ObjectSchema) spec.Schema {
	out := spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type:       spec.StringOrArray{"object"},
			Properties: make(spec.SchemaProperties, len(schema.Fields)),
		},
	}

	for _, field := range schema.Fields {
		out.Properties[field.Name] = fieldSpecSchema(field)
	}
	out.Required = schema.RequiredFields()

	return out
}

func fieldSpecSchema(field domain.FieldSchema) spec.Schema {
	out := spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type:        spec.StringOrArray{string(field.Type)},
			Format:      field.Format,
			Minimum:     field.Minimum,
			Description: field.Description,
		},
	}

	if field.Type == domain.TypeArray {
		items := spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{string(domain.TypeString)}}}
		if field.Items != nil {
			items = fieldSpecSchema(*field.Items)
		}
		out.Items = &spec.SchemaOrArray{Schema: &items}
	}

	return out
}

// flattenParameters expands an object schema into one primitive
// parameter per field for the query and header locations.
func flattenParameters(schema *domain.ObjectSchema, in string) []spec.Parameter {
	if schema == nil {
		return nil
	}

	params := make([]spec.Parameter, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		param := spec.Parameter{
			ParamProps: spec.ParamProps{
				Name:        field.Name,
				In:          in,
				Description: field.Description,
				Required:    field.Required,
			},
			SimpleSchema: spec.SimpleSchema{
				Type:   string(field.Type),
				Format: field.Format,
			},
			CommonValidations: spec.CommonValidations{
				Minimum: field.Minimum,
			},
		}
		if field.Type == domain.TypeArray {
			itemType := string(domain.TypeString)
			if field.Items != nil {
				itemType = string(field.Items.Type)
			}
			param.Items = &spec.Items{SimpleSchema: spec.SimpleSchema{Type: itemType}}
		}
		params = append(params, param)
	}

	return params
}

// pathParameters emits one path parameter per templated segment, typed
// by the params schema when a matching field exists. Path parameters
// are always required.
func pathParameters(route *domain.RouteInfo) []spec.Parameter {
	var params []spec.Parameter

	fields := make(map[string]domain.FieldSchema)
	if route.Params != nil {
		for _, field := range route.Params.Fields {
			fields[field.Name] = field
		}
	}

	for _, segment := range strings.Split(route.Path, "/") {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := segment[1 : len(segment)-1]
		if name == "" {
			continue
		}

		param := spec.Parameter{
			ParamProps: spec.ParamProps{
				Name:     name,
				In:       "path",
				Required: true,
			},
			SimpleSchema: spec.SimpleSchema{Type: string(domain.TypeString)},
		}
		if field, ok := fields[name]; ok {
			param.Type = string(field.Type)
			param.Format = field.Format
			param.Description = field.Description
			param.Minimum = field.Minimum
		}
		params = append(params, param)
	}

	return params
}
