package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/ts-swag/internal/console"
	"github.com/griffnb/ts-swag/internal/gen"
)

const (
	searchDirFlag      = "dir"
	excludeFlag        = "exclude"
	configFlag         = "config"
	outputFlag         = "output"
	outputTypesFlag    = "outputTypes"
	openAPIVersionFlag = "openapiVersion"
	titleFlag          = "title"
	apiVersionFlag     = "apiVersion"
	descriptionFlag    = "description"
	baseURLFlag        = "baseUrl"
	hostFlag           = "host"
	basePathFlag       = "basePath"
	instanceNameFlag   = "instanceName"
	quietFlag          = "quiet"
	debugFlag          = "debug"
)

var initFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to scan, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories and files when searching, comma separated",
	},
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Usage:   "YAML config file; command-line flags override its values",
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files (swagger.json, swagger.yaml)",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated files (swagger.json, swagger.yaml) like json,yaml",
	},
	&cli.StringFlag{
		Name:  openAPIVersionFlag,
		Value: gen.SupportedOpenAPIVersion,
		Usage: "OpenAPI version of the generated document; only 2.0 is supported",
	},
	&cli.StringFlag{
		Name:  titleFlag,
		Usage: "API title; derived from the scan directory name when empty",
	},
	&cli.StringFlag{
		Name:  apiVersionFlag,
		Usage: "API version written to the document info",
	},
	&cli.StringFlag{
		Name:  descriptionFlag,
		Usage: "API description written to the document info",
	},
	&cli.StringFlag{
		Name:  baseURLFlag,
		Usage: "Base URL the API is served from, e.g. https://api.example.com/v1",
	},
	&cli.StringFlag{
		Name:  hostFlag,
		Usage: "API host, e.g. api.example.com",
	},
	&cli.StringFlag{
		Name:  basePathFlag,
		Usage: "Base path all routes are served under",
	},
	&cli.StringFlag{
		Name:  instanceNameFlag,
		Value: "",
		Usage: "This parameter can be used to name different document instances. It is optional.",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

// fileConfig is the YAML shape of the --config file. Any field left
// unset falls back to the corresponding flag value.
type fileConfig struct {
	Dir            string   `json:"dir"`
	Exclude        string   `json:"exclude"`
	Output         string   `json:"output"`
	OutputTypes    []string `json:"outputTypes"`
	OpenAPIVersion string   `json:"openapiVersion"`
	Title          string   `json:"title"`
	Version        string   `json:"version"`
	Description    string   `json:"description"`
	BaseURL        string   `json:"baseUrl"`
	Host           string   `json:"host"`
	BasePath       string   `json:"basePath"`
}

func initAction(ctx *cli.Context) error {
	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		logger = log.New(io.Discard, "", log.LstdFlags)
		console.Logger.SetOutput(io.Discard)
	}

	config := &gen.Config{
		SearchDir:      ctx.String(searchDirFlag),
		Excludes:       ctx.String(excludeFlag),
		OutputDir:      ctx.String(outputFlag),
		OutputTypes:    strings.Split(ctx.String(outputTypesFlag), ","),
		OpenAPIVersion: ctx.String(openAPIVersionFlag),
		Title:          ctx.String(titleFlag),
		Version:        ctx.String(apiVersionFlag),
		Description:    ctx.String(descriptionFlag),
		BaseURL:        ctx.String(baseURLFlag),
		Host:           ctx.String(hostFlag),
		BasePath:       ctx.String(basePathFlag),
		InstanceName:   ctx.String(instanceNameFlag),
		Debugger:       logger,
	}

	if configFile := ctx.String(configFlag); configFile != "" {
		if err := mergeConfigFile(ctx, configFile, config); err != nil {
			return err
		}
	}

	if len(config.OutputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}

	return gen.New().Build(ctx.Context, config)
}

// mergeConfigFile fills config fields from the YAML file for every flag
// the user did not set explicitly.
func mergeConfigFile(ctx *cli.Context, path string, config *gen.Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	merge := func(flag string, dst *string, value string) {
		if !ctx.IsSet(flag) && value != "" {
			*dst = value
		}
	}

	merge(searchDirFlag, &config.SearchDir, fc.Dir)
	merge(excludeFlag, &config.Excludes, fc.Exclude)
	merge(outputFlag, &config.OutputDir, fc.Output)
	merge(openAPIVersionFlag, &config.OpenAPIVersion, fc.OpenAPIVersion)
	merge(titleFlag, &config.Title, fc.Title)
	merge(apiVersionFlag, &config.Version, fc.Version)
	merge(descriptionFlag, &config.Description, fc.Description)
	merge(baseURLFlag, &config.BaseURL, fc.BaseURL)
	merge(hostFlag, &config.Host, fc.Host)
	merge(basePathFlag, &config.BasePath, fc.BasePath)

	if !ctx.IsSet(outputTypesFlag) && len(fc.OutputTypes) > 0 {
		config.OutputTypes = fc.OutputTypes
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "ts-swag"
	app.Version = gen.Version
	app.Usage = "Automatically generate RESTful API documentation with Swagger 2.0 for TypeScript and JavaScript services."
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate swagger documentation",
			Action:  initAction,
			Flags:   initFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
