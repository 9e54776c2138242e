package compiler

import (
	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/document"
)

// InjectBaseline adds the shared ECS cluster and CloudWatch log group unless
// resources with those names already exist. It must run before any task is
// derived: containers log to the group and services run in the cluster.
func InjectBaseline(doc *document.Document) {
	doc.PutIfAbsent(ClusterName, wetwire.ResourceDef{Type: "AWS::ECS::Cluster"})
	doc.PutIfAbsent(LogGroupName, wetwire.ResourceDef{Type: "AWS::Logs::LogGroup"})
}
