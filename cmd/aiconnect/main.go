// Package main provides the CLI entry point for the AI connector runtime.
// It stands in for a host application: action documents are read from YAML
// files, validated against the action schema, and executed through the
// connector pipeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aiconnect/runtime/internal/config"
	"github.com/aiconnect/runtime/internal/executor"
	"github.com/aiconnect/runtime/internal/feature"
	"github.com/aiconnect/runtime/internal/logger"
	"github.com/aiconnect/runtime/internal/request"
	"github.com/aiconnect/runtime/pkg/connector"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool

	// File flag shared by run and test
	documentFile string

	// Build information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:     "aiconnect",
	Short:   "aiconnect - AI backend connector runtime",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		levelName := settings.LogLevel
		if verbose {
			levelName = "debug"
		}
		level, err := logger.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute an action document against the AI backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, raw, err := loadDocument(documentFile)
		if err != nil {
			os.Exit(ExitParseError)
		}

		if result := config.ValidateActionDocument(raw); !result.Valid {
			for _, verr := range result.Errors {
				fmt.Fprintf(os.Stderr, "invalid action document: %s: %s\n", verr.Path, verr.Message)
			}
			os.Exit(ExitValidationError)
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		if doc.Datasource.URL != "" {
			settings.BaseURL = doc.Datasource.URL
		}

		exec := executor.New(settings)
		ctx := context.Background()

		conn, err := exec.CreateConnection(ctx, &doc.Datasource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connection setup failed: %v\n", err)
			os.Exit(ExitValidationError)
		}

		result := exec.Execute(ctx, conn, &doc.Datasource, &doc.Action, doc.Params)
		printJSON(result)
		if !result.Success {
			os.Exit(ExitRuntimeError)
		}
		return nil
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Probe a datasource's credentials without running a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadDocument(documentFile)
		if err != nil {
			os.Exit(ExitParseError)
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		if doc.Datasource.URL != "" {
			settings.BaseURL = doc.Datasource.URL
		}

		exec := executor.New(settings)
		result := exec.TestDatasource(context.Background(), &doc.Datasource)
		printJSON(result)
		if !result.Success {
			os.Exit(ExitRuntimeError)
		}
		return nil
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the supported use cases",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range feature.List() {
			fmt.Println(f)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().StringVarP(&documentFile, "file", "f", "", "action document file (YAML)")
	_ = runCmd.MarkFlagRequired("file")

	testCmd.Flags().StringVarP(&documentFile, "file", "f", "", "action document file (YAML)")
	_ = testCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(featuresCmd)
}

// actionDocument is the YAML document the CLI executes: a datasource, an
// action, and optional invocation parameters.
type actionDocument struct {
	Datasource connector.DatasourceConfig `json:"datasource"`
	Action     connector.ActionConfig     `json:"action"`
	Params     []request.Param            `json:"params,omitempty"`
}

// loadDocument reads and parses an action document. It returns both the
// typed document and the raw map used for schema validation.
func loadDocument(path string) (*actionDocument, map[string]interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		return nil, nil, err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		fmt.Fprintf(os.Stderr, "parsing %s: %v\n", path, err)
		return nil, nil, err
	}

	// Round-trip through JSON so the typed document follows the same field
	// names as the schema and the public types.
	encoded, err := json.Marshal(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "converting %s: %v\n", path, err)
		return nil, nil, err
	}
	var doc actionDocument
	if err := json.Unmarshal(encoded, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "decoding %s: %v\n", path, err)
		return nil, nil, err
	}

	return &doc, raw, nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v interface{}) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding result: %v\n", err)
		return
	}
	fmt.Println(string(encoded))
}
