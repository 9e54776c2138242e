package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-fargate-go/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var (
		in           inputs
		outputFormat string
		ignoreOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the resources compilation adds or changes",
		Long: `Diff compiles the configured tasks and compares the result with the input template.

Examples:
    wetwire-fargate diff --template cloudformation-template-update-stack.json
    wetwire-fargate diff -f json
    wetwire-fargate diff --ignore-order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(in, outputFormat, ignoreOrder, os.Stdout)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore list element order when comparing")

	return cmd
}

func runDiff(in inputs, format string, ignoreOrder bool, w io.Writer) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	before, after, err := compile(in)
	if err != nil {
		return err
	}

	result, err := differ.Compare(before, after, differ.Options{IgnoreOrder: ignoreOrder})
	if err != nil {
		return err
	}

	if format == "json" {
		data, err := json.MarshalIndent(struct {
			Diff    any `json:"diff"`
			Summary any `json:"summary"`
		}{result.Diff, result.Summary}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	writeDiffText(w, result)
	return nil
}

func writeDiffText(w io.Writer, result *differ.Result) {
	if result.Summary.Total == 0 {
		fmt.Fprintln(w, "No changes.")
		return
	}

	for _, e := range result.Diff.Added {
		fmt.Fprintf(w, "+ %s (%s)\n", e.Resource, e.Type)
	}
	for _, e := range result.Diff.Modified {
		fmt.Fprintf(w, "~ %s (%s)\n", e.Resource, e.Type)
		for _, c := range e.Changes {
			fmt.Fprintf(w, "    %s\n", c)
		}
	}
	for _, e := range result.Diff.Removed {
		fmt.Fprintf(w, "- %s (%s)\n", e.Resource, e.Type)
	}

	fmt.Fprintf(w, "\n%d added, %d modified, %d removed\n",
		result.Summary.Added, result.Summary.Modified, result.Summary.Removed)
}
