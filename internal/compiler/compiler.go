// Package compiler derives ECS Fargate resources from task configurations
// and merges them into a CloudFormation template.
//
// A compilation is a single pass:
//
//  1. InjectBaseline adds the shared cluster and log group.
//  2. ReconcilePermissions extends the shared execution role, once, when any
//     task relies on it.
//  3. Every task, in declaration order, becomes a <Name>Task task definition
//     and a <Name>Service service.
//
// The first error aborts the pass. Nothing is rolled back.
package compiler

import (
	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/document"
)

// LogFunc receives diagnostic lines, one call per line.
type LogFunc func(msg string)

// Options configures diagnostics. They never change the produced resources.
type Options struct {
	// Debug enables diagnostic lines.
	Debug bool
	// Color wraps diagnostic lines in ANSI yellow.
	Color bool
	// Log receives diagnostic lines. Nil discards them.
	Log LogFunc
}

// Compiler merges task configurations into documents.
type Compiler struct {
	opts Options
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// TaskResources are the two resources derived from one task.
type TaskResources struct {
	TaskName    string
	Task        wetwire.ResourceDef
	ServiceName string
	Service     wetwire.ResourceDef
}

// Compile merges every task of cfg into doc.
func (c *Compiler) Compile(doc *document.Document, cfg *config.Config) error {
	c.debug("Fargate Tasks Plugin")

	if cfg == nil || cfg.Tasks == nil {
		return &ConfigurationError{Path: "tasks", Err: ErrMissingTasks}
	}

	InjectBaseline(doc)

	if NeedsExecutionRole(cfg.Tasks) {
		if err := ReconcilePermissions(doc); err != nil {
			return err
		}
	}

	for _, identifier := range cfg.Tasks.Keys() {
		c.debug("Processing " + identifier)

		spec, _ := cfg.Tasks.Get(identifier)
		res, err := DeriveTask(identifier, spec, cfg.Environment)
		if err != nil {
			return err
		}

		// Identifiers that normalize to the same name overwrite each other.
		doc.Put(res.TaskName, res.Task)
		doc.Put(res.ServiceName, res.Service)
	}
	return nil
}

// DeriveTask builds the task definition and service of one task. It does not
// touch the document.
func DeriveTask(identifier string, spec config.TaskSpec, globalEnv *config.OrderedMap[any]) (*TaskResources, error) {
	env, err := ResolveEnvironment(globalEnv, spec.DeclaredEnvironment())
	if err != nil {
		return nil, &ConfigurationError{Path: "tasks." + identifier + ".environment", Err: err}
	}

	container, err := BuildContainer(identifier, spec, env)
	if err != nil {
		return nil, err
	}

	task, err := BuildTaskDefinition(identifier, spec, container)
	if err != nil {
		return nil, err
	}

	service, err := BuildService(identifier, spec)
	if err != nil {
		return nil, err
	}

	return &TaskResources{
		TaskName:    TaskResourceName(identifier),
		Task:        task,
		ServiceName: ServiceResourceName(identifier),
		Service:     service,
	}, nil
}

func (c *Compiler) debug(msg string) {
	if !c.opts.Debug || c.opts.Log == nil {
		return
	}
	c.opts.Log(c.yellow(msg))
}

// yellow wraps s in the ANSI foreground-yellow and default-foreground codes.
func (c *Compiler) yellow(s string) string {
	if !c.opts.Color {
		return s
	}
	return "\x1b[33m" + s + "\x1b[39m"
}
