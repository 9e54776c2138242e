// Command wetwire-fargate compiles Fargate task declarations into CloudFormation.
//
// Usage:
//
//	wetwire-fargate build --config serverless.yml     Compile and print the template
//	wetwire-fargate graph --config serverless.yml     Show resource dependencies
//	wetwire-fargate diff --template in.json           Show what compilation changes
//	wetwire-fargate lint                              Run cfn-lint on the result
//	wetwire-fargate watch                             Rebuild on change
//	wetwire-fargate version                           Show version
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lex00/wetwire-fargate-go/internal/config"
)

var (
	// logger carries the CLI's own operational logs. Compiler diagnostics go
	// through compileLog instead.
	logger = zap.NewNop()

	// runOpts are the resolved debug/color options of the current invocation.
	runOpts config.Options

	envFile string
)

// errIssuesFound signals a run that completed but found problems.
var errIssuesFound = errors.New("issues found")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errIssuesFound) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wetwire-fargate",
		Short: "Compile Fargate task declarations into CloudFormation",
		Long: `wetwire-fargate merges declarative ECS Fargate tasks into a CloudFormation template.

Declare tasks under custom.fargate in serverless.yml:

    custom:
      fargate:
        tasks:
          worker:
            image: 123456789012.dkr.ecr.us-east-1.amazonaws.com/worker:latest
            network:
              subnets: [subnet-1234]

Then compile them:

    wetwire-fargate build --config serverless.yml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.LoadOptions(cmd.Flags(), envFile)
			if err != nil {
				return fmt.Errorf("resolving options: %w", err)
			}
			runOpts = opts

			zc := zap.NewProductionConfig()
			if opts.Debug {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Print compiler diagnostics (also SLS_DEBUG)")
	rootCmd.PersistentFlags().Bool("color", true, "Colorize compiler diagnostics")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before resolving options")

	rootCmd.AddCommand(
		newBuildCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newLintCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wetwire-fargate %s\n", getVersion())
		},
	}
}
