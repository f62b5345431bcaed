package servers

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yml
var openAPIDocument []byte

// RawSpec returns the OpenAPI document as written.
func RawSpec() []byte {
	return openAPIDocument
}

// GetSwagger parses and validates the embedded OpenAPI document. Each call returns a new copy.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	swagger, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}

	if err = swagger.Validate(context.Background()); err != nil {
		return nil, err
	}

	return swagger, nil
}
