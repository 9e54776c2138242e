package schema

// resourceSchemas covers the resource types a compiled Fargate template holds.
//
// Cpu and Memory are typed Json: CloudFormation declares them as strings but
// accepts numbers, and task configurations commonly use either.
var resourceSchemas = map[string]ResourceSchema{
	"AWS::ECS::Cluster": {
		Properties: map[string]PropertySchema{
			"CapacityProviders":               {Type: "List"},
			"ClusterName":                     {Type: "String"},
			"ClusterSettings":                 {Type: "List"},
			"Configuration":                   {Type: "Map"},
			"DefaultCapacityProviderStrategy": {Type: "List"},
			"Tags":                            {Type: "List"},
		},
	},
	"AWS::Logs::LogGroup": {
		Properties: map[string]PropertySchema{
			"LogGroupName":    {Type: "String"},
			"RetentionInDays": {Type: "Integer"},
			"KmsKeyId":        {Type: "String"},
			"Tags":            {Type: "List"},
		},
	},
	"AWS::ECS::TaskDefinition": {
		Properties: map[string]PropertySchema{
			"ContainerDefinitions":    {Type: "List"},
			"Cpu":                     {Type: "Json"},
			"ExecutionRoleArn":        {Type: "String"},
			"Family":                  {Type: "String"},
			"Memory":                  {Type: "Json"},
			"NetworkMode":             {Type: "String", AllowedValues: []string{"awsvpc", "bridge", "host", "none"}},
			"RequiresCompatibilities": {Type: "List"},
			"RuntimePlatform":         {Type: "Map"},
			"TaskRoleArn":             {Type: "String"},
			"Volumes":                 {Type: "List"},
			"Tags":                    {Type: "List"},
		},
	},
	"AWS::ECS::Service": {
		Properties: map[string]PropertySchema{
			"Cluster":                       {Type: "String"},
			"DeploymentConfiguration":       {Type: "Map"},
			"DesiredCount":                  {Type: "Integer"},
			"EnableExecuteCommand":          {Type: "Boolean"},
			"HealthCheckGracePeriodSeconds": {Type: "Integer"},
			"LaunchType":                    {Type: "String", AllowedValues: []string{"EC2", "FARGATE", "EXTERNAL"}},
			"LoadBalancers":                 {Type: "List"},
			"NetworkConfiguration":          {Type: "Map"},
			"PlatformVersion":               {Type: "String"},
			"PropagateTags":                 {Type: "String", AllowedValues: []string{"SERVICE", "TASK_DEFINITION"}},
			"ServiceName":                   {Type: "String"},
			"TaskDefinition":                {Type: "String"},
			"Tags":                          {Type: "List"},
		},
	},
	"AWS::IAM::Role": {
		Required: []string{"AssumeRolePolicyDocument"},
		Properties: map[string]PropertySchema{
			"AssumeRolePolicyDocument": {Type: "Map"},
			"Description":              {Type: "String"},
			"ManagedPolicyArns":        {Type: "List"},
			"MaxSessionDuration":       {Type: "Integer"},
			"Path":                     {Type: "String"},
			"PermissionsBoundary":      {Type: "String"},
			"Policies":                 {Type: "List"},
			"RoleName":                 {Type: "String"},
			"Tags":                     {Type: "List"},
		},
	},
	"AWS::S3::Bucket": {
		Properties: map[string]PropertySchema{
			"BucketEncryption": {Type: "Map"},
			"BucketName":       {Type: "String"},
			"Tags":             {Type: "List"},
		},
	},
}
