package cdk

import (
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// ContextPrefix prefixes every CDK context key the app reads.
const ContextPrefix = "pdx-"

// AppConfig is the service's app configuration.
func AppConfig() pdxcdkutil.AppConfig {
	accounts := make(map[string]string, len(stage.Names()))
	for _, name := range stage.Names() {
		accounts[name.String()] = name.Account()
	}
	return pdxcdkutil.AppConfig{
		Prefix:         ContextPrefix,
		Platform:       "OrcaBus",
		Service:        "PdxService",
		ResourcePrefix: stage.ResourcePrefix,
		Accounts:       accounts,
	}
}

// StackName returns the physical stack name of a stage in a deploy mode.
func StackName(n stage.Name, mode pdxcdkutil.DeployMode) string {
	acfg := AppConfig()
	return pdxcdkutil.StackName(acfg.Platform, acfg.Service, n.String(), mode)
}
