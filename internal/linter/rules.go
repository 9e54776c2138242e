package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lex00/wetwire-fargate-go/internal/compiler"
	"github.com/lex00/wetwire-fargate-go/internal/config"
)

// Rule is the interface for lint rules.
type Rule interface {
	ID() string
	Description() string
	Check(cfg *config.Config) []Issue
}

func taskPath(identifier string, rest ...string) string {
	return strings.Join(append([]string{"tasks", identifier}, rest...), ".")
}

// NameCollision detects task identifiers whose resources would share a
// logical name, in which case the later task silently replaces the earlier.
//
// Example: "my-worker" and "my_worker" both become MyworkerTask.
type NameCollision struct{}

func (r NameCollision) ID() string { return "WFG001" }
func (r NameCollision) Description() string {
	return "Task identifiers must normalize to distinct logical names"
}

func (r NameCollision) Check(cfg *config.Config) []Issue {
	var issues []Issue
	first := make(map[string]string)

	for _, id := range cfg.Tasks.Keys() {
		name := compiler.NormalizeName(id)
		if name == "" {
			continue
		}
		if prev, ok := first[name]; ok {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Severity:   SeverityError,
				Message:    fmt.Sprintf("task %q overwrites the resources of %q (both compile to %s)", id, prev, compiler.TaskResourceName(id)),
				Suggestion: "Rename one of the tasks",
				Path:       taskPath(id),
			})
			continue
		}
		first[name] = id
	}
	return issues
}

// EmptyName detects identifiers that lose every character on normalization.
type EmptyName struct{}

func (r EmptyName) ID() string { return "WFG002" }
func (r EmptyName) Description() string {
	return "Task identifiers must contain a letter or digit"
}

func (r EmptyName) Check(cfg *config.Config) []Issue {
	var issues []Issue
	for _, id := range cfg.Tasks.Keys() {
		if compiler.NormalizeName(id) == "" {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("task %q has no letters or digits; its resources would be named %q and %q", id, compiler.TaskResourceName(id), compiler.ServiceResourceName(id)),
				Path:     taskPath(id),
			})
		}
	}
	return issues
}

// UnpinnedImage flags images using the latest tag or no tag at all.
type UnpinnedImage struct{}

func (r UnpinnedImage) ID() string { return "WFG003" }
func (r UnpinnedImage) Description() string {
	return "Pin container images to a tag or digest"
}

func (r UnpinnedImage) Check(cfg *config.Config) []Issue {
	var issues []Issue
	for _, id := range cfg.Tasks.Keys() {
		spec, _ := cfg.Tasks.Get(id)
		image, ok := spec.Image.(string)
		if !ok || image == "" || strings.Contains(image, "@") {
			continue
		}

		// The tag follows the last colon after the last slash; a colon
		// before it is a registry port.
		ref := image[strings.LastIndex(image, "/")+1:]
		tag := ""
		if i := strings.LastIndex(ref, ":"); i >= 0 {
			tag = ref[i+1:]
		}

		if tag == "" || tag == "latest" {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("image %q is not pinned; redeploying will not pick up new pushes", image),
				Suggestion: "Use an immutable tag or an @sha256 digest",
				Path:       taskPath(id, "image"),
			})
		}
	}
	return issues
}

// MissingImage flags tasks whose container has no image, either directly or
// through override.container.
type MissingImage struct{}

func (r MissingImage) ID() string { return "WFG004" }
func (r MissingImage) Description() string {
	return "Every task needs a container image"
}

func (r MissingImage) Check(cfg *config.Config) []Issue {
	var issues []Issue
	for _, id := range cfg.Tasks.Keys() {
		spec, _ := cfg.Tasks.Get(id)
		if spec.Image != nil {
			continue
		}
		if spec.Override != nil && spec.Override.Container["Image"] != nil {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("task %q has no image", id),
			Path:     taskPath(id, "image"),
		})
	}
	return issues
}

// PublicIP notes tasks that receive a public IP address.
type PublicIP struct{}

func (r PublicIP) ID() string { return "WFG005" }
func (r PublicIP) Description() string {
	return "Tasks with a public IP are reachable from the internet"
}

func (r PublicIP) Check(cfg *config.Config) []Issue {
	var issues []Issue
	for _, id := range cfg.Tasks.Keys() {
		spec, _ := cfg.Tasks.Get(id)
		if spec.Network == nil {
			continue
		}
		if s, ok := spec.Network.PublicIP.(string); ok && s == "ENABLED" {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Severity:   SeverityInfo,
				Message:    fmt.Sprintf("task %q is assigned a public IP", id),
				Suggestion: "Use private subnets with a NAT gateway unless inbound access is needed",
				Path:       taskPath(id, "network", "public-ip"),
			})
		}
	}
	return issues
}

// SecretPattern detects hardcoded credentials in global and per-task
// environment values.
type SecretPattern struct{}

func (r SecretPattern) ID() string { return "WFG006" }
func (r SecretPattern) Description() string {
	return "Detect hardcoded secrets in environment values"
}

type secretPatternDef struct {
	name    string
	pattern *regexp.Regexp
}

var secretPatterns = []secretPatternDef{
	{"AWS access key", regexp.MustCompile(`^(A3T[A-Z0-9]|AKIA|ABIA|ACCA|ASIA)[A-Z0-9]{16}$`)},
	{"private key", regexp.MustCompile(`-----BEGIN\s+([A-Z]+\s+)?PRIVATE\s+KEY-----`)},
	{"Stripe API key", regexp.MustCompile(`^sk_(live|test)_[a-zA-Z0-9]{24,}$`)},
	{"GitHub token", regexp.MustCompile(`^gh[pousr]_[A-Za-z0-9_]{36,}$`)},
	{"GitHub token", regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`)},
	{"Slack token", regexp.MustCompile(`^xox[baprs]-[0-9]{10,}-[0-9]{10,}-[a-zA-Z0-9]{24,}$`)},
}

// sensitiveNames are substrings of variable names that commonly hold secrets.
var sensitiveNames = []string{"PASSWORD", "SECRET", "TOKEN", "API_KEY", "APIKEY", "PRIVATE_KEY", "CREDENTIALS"}

func (r SecretPattern) Check(cfg *config.Config) []Issue {
	var issues []Issue

	check := func(env *config.OrderedMap[any], path func(string) string) {
		for _, name := range env.Keys() {
			value, _ := env.Get(name)
			s, ok := value.(string)
			if !ok || s == "" {
				continue
			}
			if what := secretKind(name, s); what != "" {
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Severity:   SeverityError,
					Message:    fmt.Sprintf("potential %s in %s - avoid hardcoding secrets", what, name),
					Suggestion: "Use Secrets Manager or Parameter Store and pass a reference",
					Path:       path(name),
				})
			}
		}
	}

	check(cfg.Environment, func(name string) string { return "environment." + name })
	for _, id := range cfg.Tasks.Keys() {
		spec, _ := cfg.Tasks.Get(id)
		check(spec.Environment, func(name string) string { return taskPath(id, "environment", name) })
	}
	return issues
}

func secretKind(name, value string) string {
	for _, sp := range secretPatterns {
		if sp.pattern.MatchString(value) {
			return sp.name
		}
	}
	if isReference(value) {
		return ""
	}
	upper := strings.ToUpper(name)
	for _, s := range sensitiveNames {
		if strings.Contains(upper, s) && len(value) >= 8 {
			return "secret"
		}
	}
	return ""
}

// isReference reports whether value is a serverless variable or an ARN
// rather than a literal credential.
func isReference(value string) bool {
	return strings.HasPrefix(value, "${") || strings.HasPrefix(value, "arn:")
}

// AllRules returns all available lint rules.
func AllRules() []Rule {
	return []Rule{
		NameCollision{},
		EmptyName{},
		UnpinnedImage{},
		MissingImage{},
		PublicIP{},
		SecretPattern{},
	}
}
