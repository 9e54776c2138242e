// Package graph generates DOT and Mermaid format dependency graphs from compiled templates.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"
	wetwire "github.com/lex00/wetwire-fargate-go"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// EdgeKind classifies why one resource depends on another.
type EdgeKind string

const (
	EdgeRef       EdgeKind = "ref"
	EdgeGetAtt    EdgeKind = "getatt"
	EdgeDependsOn EdgeKind = "dependsOn"
)

// Edge is a dependency from one template entry to another.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Generator creates dependency graphs from compiled templates.
type Generator struct {
	// IncludeParameters includes parameter references in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate creates a dependency graph and writes it to w.
func (g *Generator) Generate(t *wetwire.Template, w io.Writer) error {
	graph := g.buildGraph(t)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(t *wetwire.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(t, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Edges returns every dependency between entries of the template, sorted by
// source then target. References to names the template does not define are
// dropped, as are parameter references unless includeParameters is set.
func Edges(t *wetwire.Template, includeParameters bool) []Edge {
	if t == nil {
		return nil
	}

	known := func(name string) bool {
		if _, ok := t.Resources[name]; ok {
			return true
		}
		if includeParameters {
			_, ok := t.Parameters[name]
			return ok
		}
		return false
	}

	seen := make(map[string]bool)
	var edges []Edge
	add := func(from, to string, kind EdgeKind) {
		if from == to || !known(to) {
			return
		}
		key := from + "->" + to
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, Edge{From: from, To: to, Kind: kind})
	}

	for _, name := range sortedNames(t.Resources) {
		res := t.Resources[name]
		for _, dep := range res.DependsOnList() {
			add(name, dep, EdgeDependsOn)
		}
		walkRefs(res.Properties, func(target string, kind EdgeKind) {
			add(name, target, kind)
		})
	}

	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// walkRefs calls visit for every Ref, Fn::GetAtt and Fn::Sub reference in v.
func walkRefs(v any, visit func(string, EdgeKind)) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 1 {
			if name, ok := val["Ref"].(string); ok {
				visit(name, EdgeRef)
				return
			}
			if args, ok := val["Fn::GetAtt"].([]any); ok && len(args) > 0 {
				if name, ok := args[0].(string); ok {
					visit(name, EdgeGetAtt)
				}
				return
			}
			if sub, ok := val["Fn::Sub"]; ok {
				walkSub(sub, visit)
				return
			}
		}
		for _, key := range sortedKeys(val) {
			walkRefs(val[key], visit)
		}
	case []any:
		for _, item := range val {
			walkRefs(item, visit)
		}
	}
}

func walkSub(sub any, visit func(string, EdgeKind)) {
	switch s := sub.(type) {
	case string:
		for _, name := range subVariables(s) {
			if attr := strings.IndexByte(name, '.'); attr > 0 {
				visit(name[:attr], EdgeGetAtt)
			} else {
				visit(name, EdgeRef)
			}
		}
	case []any:
		if len(s) > 0 {
			walkSub(s[0], visit)
		}
		if len(s) > 1 {
			walkRefs(s[1], visit)
		}
	}
}

// subVariables returns the ${Name} variables of an Fn::Sub string, skipping
// pseudo parameters and ${!Literal} escapes.
func subVariables(s string) []string {
	var names []string
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			return names
		}
		s = s[start+2:]
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return names
		}
		name := s[:end]
		s = s[end+1:]
		if name == "" || strings.HasPrefix(name, "!") || strings.HasPrefix(name, "AWS::") {
			continue
		}
		names = append(names, name)
	}
}

// buildGraph creates the dot.Graph structure from a template.
func (g *Generator) buildGraph(t *wetwire.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if t == nil {
		return graph
	}

	nodes := make(map[string]dot.Node)
	if g.ClusterByType {
		g.addClusteredNodes(graph, t.Resources, nodes)
	} else {
		g.addNodes(graph, t.Resources, nodes)
	}

	if g.IncludeParameters {
		for _, name := range sortedKeys(t.Parameters) {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
			nodes[name] = n
		}
	}

	for _, edge := range Edges(t, g.IncludeParameters) {
		e := graph.Edge(nodes[edge.From], nodes[edge.To])
		switch edge.Kind {
		case EdgeGetAtt:
			e.Attr("color", "blue")
		case EdgeDependsOn:
			e.Attr("style", "dashed")
		}
	}

	return graph
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, resources map[string]wetwire.ResourceDef, nodes map[string]dot.Node) {
	for _, name := range sortedNames(resources) {
		n := graph.Node(name)
		n.Label(name + "\\n[" + resources[name].Type + "]")
		nodes[name] = n
	}
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, resources map[string]wetwire.ResourceDef, nodes map[string]dot.Node) {
	serviceResources := make(map[string][]string)
	var services []string
	for _, name := range sortedNames(resources) {
		service := extractService(resources[name].Type)
		if _, ok := serviceResources[service]; !ok {
			services = append(services, service)
		}
		serviceResources[service] = append(serviceResources[service], name)
	}
	sort.Strings(services)

	for _, service := range services {
		resNames := serviceResources[service]
		parent := graph
		if len(resNames) > 1 {
			parent = graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			parent.Attr("label", service)
			parent.Attr("style", "rounded")
			parent.Attr("bgcolor", "lightyellow")
		}
		for _, name := range resNames {
			n := parent.Node(name)
			n.Label(name + "\\n[" + resources[name].Type + "]")
			nodes[name] = n
		}
	}
}

// extractService extracts the service name from a CloudFormation type.
// e.g., "AWS::ECS::Service" -> "ECS"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) >= 2 {
		return parts[1]
	}
	return "Other"
}

func sortedNames(resources map[string]wetwire.ResourceDef) []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
