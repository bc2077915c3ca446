// Package gen drives a full scan-and-emit run: it scans the configured
// source tree, assembles the OpenAPI document, and writes it in the
// requested output formats.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/go-openapi/spec"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/ts-swag/internal/console"
	"github.com/griffnb/ts-swag/internal/loader"
	"github.com/griffnb/ts-swag/internal/orchestrator"
)

// SupportedOpenAPIVersion is the only document version emitted.
const SupportedOpenAPIVersion = "2.0"

type genTypeWriter func(*Config, *spec.Swagger) error

// Gen presents the generate tool.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      log.New(os.Stdout, "", log.LstdFlags),
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"json": gen.writeJSONDoc,
		"yaml": gen.writeYAMLDoc,
		"yml":  gen.writeYAMLDoc,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SearchDir the directories to scan, comma separated if multiple
	SearchDir string

	// Excludes dirs and files in SearchDir, comma separated
	Excludes string

	// OutputDir represents the output directory for the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// OpenAPIVersion of the emitted document; only 2.0 is supported
	OpenAPIVersion string

	// Title of the API; derived from the first search dir when empty
	Title string

	// Version of the API
	Version string

	// Description of the API
	Description string

	// BaseURL the API is served from, e.g. https://api.example.com/v1;
	// split into Host and BasePath when those are not set directly
	BaseURL string

	// Host of the API, e.g. api.example.com
	Host string

	// BasePath all routes are served under
	BasePath string

	// InstanceName distinguishes output files of multiple documents
	InstanceName string
}

// Build scans the configured search directories and writes the OpenAPI
// document in each requested output format.
func (g *Gen) Build(ctx context.Context, config *Config) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	searchDirs := splitList(config.SearchDir)
	for _, searchDir := range searchDirs {
		if _, err := os.Stat(searchDir); os.IsNotExist(err) {
			return fmt.Errorf("dir: %s does not exist", searchDir)
		}
	}

	if config.OpenAPIVersion == "" {
		config.OpenAPIVersion = SupportedOpenAPIVersion
	}
	if config.OpenAPIVersion != SupportedOpenAPIVersion {
		return fmt.Errorf("unsupported OpenAPI version: %s", config.OpenAPIVersion)
	}

	if err := applyBaseURL(config); err != nil {
		return err
	}

	console.Logger.Debug("Generate API docs....")

	orc := orchestrator.NewService(
		orchestrator.WithLoader(loader.NewService(
			loader.WithExcludes(parseExcludes(config.Excludes)),
			loader.WithDebugger(g.debug),
		)),
		orchestrator.WithDebugger(g.debug),
	)

	routes, err := orc.Scan(ctx, searchDirs)
	if err != nil {
		return err
	}

	swagger := assemble(config, searchDirs, routes)

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, swagger); err != nil {
				return err
			}
		} else {
			log.Printf("output type '%s' not supported", outputType)
		}
	}

	return nil
}

func (g *Gen) outputFileName(config *Config, base string) string {
	if config.InstanceName != "" {
		base = config.InstanceName + "_" + base
	}
	return path.Join(config.OutputDir, base)
}

func (g *Gen) writeJSONDoc(config *Config, swagger *spec.Swagger) error {
	jsonFileName := g.outputFileName(config, "swagger.json")

	b, err := g.jsonIndent(swagger)
	if err != nil {
		return err
	}

	err = g.writeFile(b, jsonFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create swagger.json at %+v", jsonFileName)

	return nil
}

func (g *Gen) writeYAMLDoc(config *Config, swagger *spec.Swagger) error {
	yamlFileName := g.outputFileName(config, "swagger.yaml")

	b, err := g.json(swagger)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot convert json to yaml error: %s", err)
	}

	err = g.writeFile(y, yamlFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create swagger.yaml at %+v", yamlFileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// applyBaseURL splits a configured base URL into host and base path,
// without overriding either when set explicitly.
func applyBaseURL(config *Config) error {
	if config.BaseURL == "" {
		return nil
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}

	if config.Host == "" {
		config.Host = u.Host
	}
	if config.BasePath == "" && u.Path != "" && u.Path != "/" {
		config.BasePath = strings.TrimSuffix(u.Path, "/")
	}

	return nil
}

// splitList converts a comma-separated string to a trimmed slice.
func splitList(raw string) []string {
	var result []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseExcludes converts a comma-separated exclude string to a map.
func parseExcludes(excludes string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, exclude := range splitList(excludes) {
		result[exclude] = struct{}{}
	}
	return result
}
