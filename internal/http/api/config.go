// Package api builds the Huma configuration shared by the server and tests.
package api

import "github.com/danielgtaylor/huma/v2"

// DocsPath serves the interactive API documentation.
const DocsPath = "/api-docs"

// NewConfig returns the Huma configuration for the service.
//
// The default schema-link hook is removed so response bodies carry only their
// declared fields (no "$schema" member and no describedBy Link header). CBOR is
// documented alongside JSON for every request and response body.
func NewConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.DocsPath = DocsPath
	cfg.CreateHooks = nil
	cfg.OnAddOperation = append(cfg.OnAddOperation, addCBORContent)
	return cfg
}

// addCBORContent mirrors each application/json media type as application/cbor.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp == nil || resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}
