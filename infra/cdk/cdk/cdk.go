package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/orcabus/pdxmanager/infra/cdk"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

func main() {
	defer jsii.Close()
	app := awscdk.NewApp(nil)

	pdxcdkutil.SetupApp(app, cdk.AppConfig(), cdk.NewStateful, cdk.NewStateless)

	app.Synth(nil)
}
