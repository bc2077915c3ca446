package gen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/ts-swag/internal/domain"
)

func float(v float64) *float64 {
	return &v
}

func TestAssemble(t *testing.T) {
	routes := []*domain.RouteInfo{
		{
			Method: "POST",
			Path:   "/users",
			Body: &domain.ObjectSchema{
				Name: "createUserSchema",
				Fields: []domain.FieldSchema{
					{Name: "name", Type: domain.TypeString, Required: true, Minimum: float(1)},
					{Name: "email", Type: domain.TypeString, Format: "email", Required: true},
				},
			},
			Responses: map[int]*domain.ObjectSchema{
				201: {
					Name: "UserResponse",
					Fields: []domain.FieldSchema{
						{Name: "id", Type: domain.TypeString, Required: true},
					},
				},
			},
		},
		{
			Method: "GET",
			Path:   "/users/{id}",
			Query: &domain.ObjectSchema{
				Name: "userQuerySchema",
				Fields: []domain.FieldSchema{
					{Name: "expand", Type: domain.TypeBoolean, Description: "Include relations"},
				},
			},
			Params: &domain.ObjectSchema{
				Name: "userParamsSchema",
				Fields: []domain.FieldSchema{
					{Name: "id", Type: domain.TypeNumber, Required: true},
				},
			},
		},
	}

	config := &Config{Title: "Users API", Version: "2.1.0", Host: "api.example.com", BasePath: "/v1"}
	swagger := assemble(config, nil, routes)

	assert.Equal(t, "2.0", swagger.Swagger)
	assert.Equal(t, "Users API", swagger.Info.Title)
	assert.Equal(t, "2.1.0", swagger.Info.Version)
	assert.Equal(t, "api.example.com", swagger.Host)
	assert.Equal(t, "/v1", swagger.BasePath)

	t.Run("body parameter references a definition", func(t *testing.T) {
		post := swagger.Paths.Paths["/users"].Post
		require.NotNil(t, post)
		require.Len(t, post.Parameters, 1)

		body := post.Parameters[0]
		assert.Equal(t, "body", body.In)
		assert.True(t, body.Required)
		require.NotNil(t, body.Schema)
		assert.Equal(t, "#/definitions/createUserSchema", body.Schema.Ref.String())

		def, ok := swagger.Definitions["createUserSchema"]
		require.True(t, ok)
		assert.Equal(t, []string{"name", "email"}, def.Required)

		name := def.Properties["name"]
		assert.Equal(t, spec.StringOrArray{"string"}, name.Type)
		require.NotNil(t, name.Minimum)
		assert.Equal(t, float64(1), *name.Minimum)
		assert.Equal(t, "email", def.Properties["email"].Format)
	})

	t.Run("response schema references a definition", func(t *testing.T) {
		post := swagger.Paths.Paths["/users"].Post
		require.NotNil(t, post)

		response, ok := post.Responses.StatusCodeResponses[201]
		require.True(t, ok)
		assert.Equal(t, "Created", response.Description)
		require.NotNil(t, response.Schema)
		assert.Equal(t, "#/definitions/UserResponse", response.Schema.Ref.String())
	})

	t.Run("query and path parameters are flattened", func(t *testing.T) {
		get := swagger.Paths.Paths["/users/{id}"].Get
		require.NotNil(t, get)
		require.Len(t, get.Parameters, 2)

		expand := get.Parameters[0]
		assert.Equal(t, "query", expand.In)
		assert.Equal(t, "boolean", expand.Type)
		assert.Equal(t, "Include relations", expand.Description)
		assert.False(t, expand.Required)

		id := get.Parameters[1]
		assert.Equal(t, "path", id.In)
		assert.Equal(t, "number", id.Type)
		assert.True(t, id.Required)
	})

	t.Run("route without responses gets a default", func(t *testing.T) {
		get := swagger.Paths.Paths["/users/{id}"].Get
		require.NotNil(t, get)

		response, ok := get.Responses.StatusCodeResponses[200]
		require.True(t, ok)
		assert.Equal(t, "OK", response.Description)
	})
}

func TestAssembleTitleFallback(t *testing.T) {
	swagger := assemble(&Config{}, []string{"/projects/billing"}, nil)
	assert.Equal(t, "Billing API", swagger.Info.Title)
	assert.Equal(t, "1.0.0", swagger.Info.Version)
}

func TestAssembleDefinitionNameCollision(t *testing.T) {
	routes := []*domain.RouteInfo{
		{
			Method: "POST", Path: "/a",
			Body: &domain.ObjectSchema{Name: "itemSchema", Fields: []domain.FieldSchema{{Name: "a", Type: domain.TypeString}}},
		},
		{
			Method: "POST", Path: "/b",
			Body: &domain.ObjectSchema{Name: "itemSchema", Fields: []domain.FieldSchema{{Name: "b", Type: domain.TypeNumber}}},
		},
		{
			Method: "POST", Path: "/c",
			Body: &domain.ObjectSchema{Name: "itemSchema", Fields: []domain.FieldSchema{{Name: "a", Type: domain.TypeString}}},
		},
	}

	swagger := assemble(&Config{}, nil, routes)

	assert.Len(t, swagger.Definitions, 2)
	assert.Contains(t, swagger.Definitions, "itemSchema")
	assert.Contains(t, swagger.Definitions, "itemSchema2")

	// identical shapes share one definition
	a := swagger.Paths.Paths["/a"].Post.Parameters[0].Schema.Ref.String()
	c := swagger.Paths.Paths["/c"].Post.Parameters[0].Schema.Ref.String()
	assert.Equal(t, a, c)
}

func TestBuild(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	src := `
import { z } from 'zod';

export const pingSchema = z.object({ message: z.string() });

router.post('/ping', validate(pingSchema), pingHandler);
`
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "app.ts"), []byte(src), 0o644))

	config := &Config{
		SearchDir:   srcDir,
		OutputDir:   outDir,
		OutputTypes: []string{"json", "yaml"},
		Title:       "Ping API",
	}

	require.NoError(t, New().Build(context.Background(), config))

	raw, err := os.ReadFile(filepath.Join(outDir, "swagger.json"))
	require.NoError(t, err)

	var swagger spec.Swagger
	require.NoError(t, json.Unmarshal(raw, &swagger))
	assert.Equal(t, "Ping API", swagger.Info.Title)

	post := swagger.Paths.Paths["/ping"].Post
	require.NotNil(t, post)
	require.Len(t, post.Parameters, 1)
	assert.Equal(t, "body", post.Parameters[0].In)

	_, err = os.Stat(filepath.Join(outDir, "swagger.yaml"))
	assert.NoError(t, err)
}

func TestApplyBaseURL(t *testing.T) {
	t.Run("splits host and base path", func(t *testing.T) {
		config := &Config{BaseURL: "https://api.example.com/v1/"}
		require.NoError(t, applyBaseURL(config))
		assert.Equal(t, "api.example.com", config.Host)
		assert.Equal(t, "/v1", config.BasePath)
	})

	t.Run("explicit values win", func(t *testing.T) {
		config := &Config{BaseURL: "https://api.example.com/v1", Host: "other.example.com", BasePath: "/v2"}
		require.NoError(t, applyBaseURL(config))
		assert.Equal(t, "other.example.com", config.Host)
		assert.Equal(t, "/v2", config.BasePath)
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		config := &Config{}
		require.NoError(t, applyBaseURL(config))
		assert.Empty(t, config.Host)
	})
}

func TestBuildValidation(t *testing.T) {
	t.Run("missing search dir", func(t *testing.T) {
		config := &Config{
			SearchDir:   filepath.Join(t.TempDir(), "nope"),
			OutputDir:   t.TempDir(),
			OutputTypes: []string{"json"},
		}
		assert.Error(t, New().Build(context.Background(), config))
	})

	t.Run("unsupported openapi version", func(t *testing.T) {
		config := &Config{
			SearchDir:      t.TempDir(),
			OutputDir:      t.TempDir(),
			OutputTypes:    []string{"json"},
			OpenAPIVersion: "3.1",
		}
		assert.Error(t, New().Build(context.Background(), config))
	})
}
