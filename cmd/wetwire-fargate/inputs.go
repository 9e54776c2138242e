package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/compiler"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/document"
	"github.com/lex00/wetwire-fargate-go/internal/template"
)

// inputs locate the task configuration and the document it is merged into.
type inputs struct {
	configPath   string
	templatePath string
	service      string
	stage        string
}

func addInputFlags(cmd *cobra.Command, in *inputs) {
	cmd.Flags().StringVar(&in.configPath, "config", "serverless.yml", "Task configuration (serverless.yml or a bare fargate block)")
	cmd.Flags().StringVarP(&in.templatePath, "template", "t", "", "CloudFormation template to merge into (default: provider skeleton)")
	cmd.Flags().StringVar(&in.service, "service", "service", "Service name for the provider skeleton")
	cmd.Flags().StringVar(&in.stage, "stage", "dev", "Stage name for the provider skeleton")
}

// loadDocument returns a fresh copy of the input template.
func loadDocument(in inputs) (*wetwire.Template, error) {
	if in.templatePath == "" {
		logger.Debug("Using provider skeleton",
			zap.String("service", in.service),
			zap.String("stage", in.stage))
		return document.NewProviderTemplate(in.service, in.stage)
	}
	logger.Debug("Loading template", zap.String("path", in.templatePath))
	return template.Load(in.templatePath)
}

// compileLog prints compiler diagnostics to stderr, one line per call.
func compileLog(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// compile loads the configuration and the document and runs one compilation.
// The returned template is the compiled document; the input is untouched by
// the compiler and is returned for comparison.
func compile(in inputs) (before, after *wetwire.Template, err error) {
	cfg, err := config.Load(in.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Loaded configuration",
		zap.String("path", in.configPath),
		zap.Int("tasks", cfg.Tasks.Len()))

	before, err = loadDocument(in)
	if err != nil {
		return nil, nil, err
	}
	after, err = loadDocument(in)
	if err != nil {
		return nil, nil, err
	}

	c := compiler.New(compiler.Options{
		Debug: runOpts.Debug,
		Color: runOpts.Color,
		Log:   compileLog,
	})
	doc := document.New(after)
	if err := c.Compile(doc, cfg); err != nil {
		return nil, nil, err
	}

	logger.Debug("Compiled template",
		zap.Int("resources_before", len(before.Resources)),
		zap.Int("resources_after", doc.Len()))
	return before, after, nil
}
