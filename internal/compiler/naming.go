package compiler

import (
	"strings"
	"unicode"
)

// Fixed logical names of the shared resources.
const (
	ClusterName  = "FargateTasksCluster"
	LogGroupName = "FargateTasksLogGroup"
)

// Logical-name suffixes of the per-task resources.
const (
	taskSuffix    = "Task"
	serviceSuffix = "Service"
)

// NormalizeName reduces a task identifier to ASCII letters and digits and
// upper-cases the first letter, e.g. "my-worker" → "Myworker".
//
// Distinct identifiers may normalize to the same name; the later task then
// overwrites the earlier one's resources.
func NormalizeName(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier))
	for _, r := range identifier {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		return name
	}
	return string(unicode.ToUpper(rune(name[0]))) + name[1:]
}

// TaskResourceName is the logical name of a task's TaskDefinition.
func TaskResourceName(identifier string) string {
	return NormalizeName(identifier) + taskSuffix
}

// ServiceResourceName is the logical name of a task's Service.
func ServiceResourceName(identifier string) string {
	return NormalizeName(identifier) + serviceSuffix
}
