package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type MvpBoardStackProps struct {
	awscdk.StackProps
}

// NewMvpBoardStack deploys the web app as a single Lambda behind API Gateway.
// Published queries go to whichever backend the *_DSN / REDIS_ADDR variables
// of the deploying shell point at; with none set each instance keeps its own
// in-memory store.
func NewMvpBoardStack(scope constructs.Construct, id string, props *MvpBoardStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	env := map[string]*string{
		"APP":              jsii.String("prod"),
		"SCORING_BASE_URL": jsii.String(os.Getenv("SCORING_BASE_URL")),
	}
	for _, key := range []string{"SCORING_TIMEOUT", "CORS_ALLOWED_ORIGINS", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "QUERY_TTL", "LOG_LEVEL"} {
		if value := os.Getenv(key); value != "" {
			env[key] = jsii.String(value)
		}
	}

	lambdaFn := awslambda.NewFunction(stack, jsii.String("MvpBoardApi"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Handler:     jsii.String("bootstrap"),
		Code:        awslambda.Code_FromAsset(jsii.String("../"), nil),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(30)),
		Environment: &env,
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("MvpBoardApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewMvpBoardStack(app, "MvpBoardStack", &MvpBoardStackProps{})
	app.Synth(nil)
}
