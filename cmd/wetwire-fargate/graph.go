package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-fargate-go/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		in                inputs
		outputFormat      string
		includeParameters bool
		clusterByType     bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph of the compiled template.

Edges follow Ref, Fn::GetAtt and Fn::Sub references and DependsOn.

The output can be rendered with Graphviz:
    wetwire-fargate graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    wetwire-fargate graph -f mermaid

Examples:
    wetwire-fargate graph --config serverless.yml
    wetwire-fargate graph -p              # include parameters
    wetwire-fargate graph -c              # cluster by service`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(in, outputFormat, includeParameters, clusterByType)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(in inputs, format string, includeParams bool, cluster bool) error {
	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	_, tmpl, err := compile(in)
	if err != nil {
		return err
	}

	gen := &graph.Generator{
		Format:            graphFormat,
		IncludeParameters: includeParams,
		ClusterByType:     cluster,
	}

	return gen.Generate(tmpl, os.Stdout)
}
