package pdxcdkparams_test

import (
	"fmt"

	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

func ExamplePutJSONEach() {
	type dag struct {
		Name string `json:"name"`
	}

	set := pdxcdkparams.NewSet("/orcabus/workflows/example/")
	pdxcdkparams.PutJSONEach(set, "dag-", "/orcabus/workflows/example/dag", map[string]dag{
		"1.0.1": {Name: "second"},
		"1.0.0": {Name: "first"},
	})
	set.Put("dag-default", "/orcabus/workflows/example/default-dag", "1.0.1")

	params, err := set.Parameters()
	if err != nil {
		panic(err)
	}
	for _, p := range params {
		fmt.Println(p.ID, p.Name, p.Value)
	}
	// Output:
	// dag-1.0.0 /orcabus/workflows/example/dag/1.0.0 {"name":"first"}
	// dag-1.0.1 /orcabus/workflows/example/dag/1.0.1 {"name":"second"}
	// dag-default /orcabus/workflows/example/default-dag 1.0.1
}
