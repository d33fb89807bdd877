// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file builds an OpenAPI 3 description of the service from the
// router, the collection definitions, and the restdata types, for
// /openapi.json.

import (
	"encoding/json"
	"net/http"
	"reflect"
	"sort"

	"github.com/diffeo/nebibs-backend/restdata"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/sirupsen/logrus"
)

// generateSchema describes the JSON encoding of value.
func generateSchema(value interface{}) (*openapi3.Schema, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(value, nil)
	if err != nil {
		return nil, err
	}
	return ref.Value, nil
}

// adjustProperty replaces a property of schema with a modified copy.
// Generated properties of the same Go type may share one schema.
func adjustProperty(schema *openapi3.Schema, name string, f func(*openapi3.Schema)) {
	ref := schema.Properties[name]
	if ref == nil || ref.Value == nil {
		return
	}
	value := *ref.Value
	f(&value)
	schema.Properties[name] = openapi3.NewSchemaRef("", &value)
}

func requireAll(schema *openapi3.Schema) {
	schema.Required = make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		schema.Required = append(schema.Required, name)
	}
	sort.Strings(schema.Required)
}

// recordSchema describes a response record.  Every field is always
// present in a response.
func recordSchema(record restdata.Record) (*openapi3.Schema, error) {
	schema, err := generateSchema(record)
	if err != nil {
		return nil, err
	}
	schema.Title = reflect.TypeOf(record).Name()
	requireAll(schema)
	adjustProperty(schema, "id", func(s *openapi3.Schema) { s.Format = "uuid" })
	adjustProperty(schema, "date", func(s *openapi3.Schema) { s.Format = "date" })
	adjustProperty(schema, "target_hours", func(s *openapi3.Schema) { s.Nullable = true })
	adjustProperty(schema, "weekly_hours", func(s *openapi3.Schema) {
		if s.Items == nil || s.Items.Value == nil {
			return
		}
		item := *s.Items.Value
		requireAll(&item)
		s.Items = openapi3.NewSchemaRef("", &item)
	})
	return schema, nil
}

// bodySchema describes a request body, reusing the record's property
// schemas.
func bodySchema(record *openapi3.Schema, fields restdata.PayloadFields) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, name := range fields.Fields {
		if prop, ok := record.Properties[name]; ok {
			schema.Properties[name] = prop
		}
	}
	schema.Required = fields.Required
	return schema
}

func newResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	resp := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		resp = resp.WithJSONSchema(schema)
	}
	return &openapi3.ResponseRef{Value: resp}
}

var errorDescriptions = map[string]string{
	"404": "Not Found",
	"422": "Validation Error",
	"500": "Insert Failed",
	"502": "Store Failure",
	"503": "Store Not Configured",
}

func newRequestBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema)}
}

// OpenAPI builds the service description.
func (api *restAPI) OpenAPI(collections []*collection) (*openapi3.T, error) {
	errorSchema, err := generateSchema(restdata.ErrorResponse{})
	if err != nil {
		return nil, err
	}
	requireAll(errorSchema)
	responses := func(success string, resp *openapi3.ResponseRef, failures ...string) openapi3.Responses {
		result := openapi3.Responses{success: resp}
		for _, code := range failures {
			result[code] = newResponse(errorDescriptions[code], errorSchema)
		}
		return result
	}
	idParam := openapi3.NewPathParameter("id").WithSchema(openapi3.NewUUIDSchema())

	paths := openapi3.Paths{}
	for _, c := range collections {
		var listPath, itemPath string
		err := buildURLs(api.Router).
			PathTemplate(&listPath, c.listRoute()).
			PathTemplate(&itemPath, c.Name).
			Error
		if err != nil {
			return nil, err
		}
		record, err := recordSchema(c.Record)
		if err != nil {
			return nil, err
		}
		tags := []string{c.Resource}

		paths[listPath] = &openapi3.PathItem{
			Get: &openapi3.Operation{
				Tags:        tags,
				OperationID: "list_" + c.Resource,
				Responses: responses("200",
					newResponse("Successful Response", openapi3.NewArraySchema().WithItems(record)),
					"502", "503"),
			},
			Post: &openapi3.Operation{
				Tags:        tags,
				OperationID: "create_" + c.Resource,
				RequestBody: newRequestBody(bodySchema(record, c.Payloads.Create)),
				Responses: responses("201", newResponse("Created", record),
					"422", "500", "502", "503"),
			},
		}
		paths[itemPath] = &openapi3.PathItem{
			Parameters: openapi3.Parameters{{Value: idParam}},
			Get: &openapi3.Operation{
				Tags:        tags,
				OperationID: "get_" + c.Resource,
				Responses: responses("200", newResponse("Successful Response", record),
					"404", "422", "502", "503"),
			},
			Patch: &openapi3.Operation{
				Tags:        tags,
				OperationID: "update_" + c.Resource,
				RequestBody: newRequestBody(bodySchema(record, c.Payloads.Update)),
				Responses: responses("200", newResponse("Successful Response", record),
					"404", "422", "502", "503"),
			},
			Delete: &openapi3.Operation{
				Tags:        tags,
				OperationID: "delete_" + c.Resource,
				Responses: responses("204", newResponse("Deleted", nil),
					"404", "422", "502", "503"),
			},
		}
	}

	for route, value := range map[string]interface{}{
		"health": restdata.HealthData{},
		"root":   restdata.RootData{},
	} {
		var path string
		if err := buildURLs(api.Router).PathTemplate(&path, route).Error; err != nil {
			return nil, err
		}
		schema, err := generateSchema(value)
		if err != nil {
			return nil, err
		}
		paths[path] = &openapi3.PathItem{Get: &openapi3.Operation{
			OperationID: route,
			Responses:   responses("200", newResponse("Successful Response", schema)),
		}}
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Nebibs Backend",
			Description: "Backend for Nebibs, connected to Supabase",
			Version:     "0.1.0",
		},
		Paths: paths,
	}, nil
}

// serveOpenAPI writes the service description.
func (api *restAPI) serveOpenAPI(collections []*collection) http.HandlerFunc {
	return func(resp http.ResponseWriter, req *http.Request) {
		doc, err := api.OpenAPI(collections)
		var data []byte
		if err == nil {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			api.Log.WithFields(logrus.Fields{"err": err}).Error("could not build OpenAPI document")
			http.Error(resp, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Header().Set("Content-Type", restdata.JSONMediaType)
		if req.Method == http.MethodHead {
			return
		}
		_, _ = resp.Write(data)
	}
}
