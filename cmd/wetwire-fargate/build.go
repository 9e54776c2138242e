package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/document"
	"github.com/lex00/wetwire-fargate-go/internal/template"
)

func newBuildCmd() *cobra.Command {
	var (
		in           inputs
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile Fargate tasks into a CloudFormation template",
		Long: `Build merges the configured Fargate tasks into a CloudFormation template.

Without --template the tasks are merged into a provider skeleton that holds
the deployment bucket and the shared execution role.

Examples:
    wetwire-fargate build --config serverless.yml
    wetwire-fargate build --template cloudformation-template-update-stack.json -o out.json
    wetwire-fargate build --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := template.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			return outputResult(runBuild(in), format, outputFile)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runBuild(in inputs) wetwire.BuildResult {
	_, tmpl, err := compile(in)
	if err != nil {
		return wetwire.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
	}

	return wetwire.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: document.New(tmpl).Names(),
	}
}

func outputResult(result wetwire.BuildResult, format template.Format, outputFile string) error {
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	data, err := template.Marshal(&result.Template, format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
