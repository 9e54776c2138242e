package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const workerConfig = `service: jobs
custom:
  fargate:
    environment:
      STAGE: dev
    tasks:
      my-worker:
        image: 123456789012.dkr.ecr.us-east-1.amazonaws.com/worker:latest
        environment:
          QUEUE: jobs
        network:
          subnets: [subnet-1234]
`

// writeConfig writes content to a serverless.yml in a fresh directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "serverless.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"build", "graph", "diff", "lint", "watch", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("missing %q subcommand", name)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"debug", "color", "env-file"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}

	if f := root.PersistentFlags().Lookup("color"); f.DefValue != "true" {
		t.Errorf("color default = %q, want 'true'", f.DefValue)
	}
}

func TestRootCmd_ExecuteBuild(t *testing.T) {
	defer func() { logger = zap.NewNop() }()

	cfgPath := writeConfig(t, workerConfig)
	out := filepath.Join(t.TempDir(), "template.json")

	root := newRootCmd()
	root.SetArgs([]string{
		"build",
		"--config", cfgPath,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"-o", out,
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file: %v", err)
	}
	if !runOpts.Color || runOpts.Debug {
		t.Errorf("runOpts = %+v, want color on and debug off", runOpts)
	}
}
