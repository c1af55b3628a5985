package specflow_test

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/specflow/specflow-go/dsl"
)

func ExampleSchema() {
	user := dsl.Object().
		Property("name", dsl.String().MinLength(1).MustBuild()).
		Property("age", dsl.Integer().Minimum(0).MustBuild()).
		Required("name").
		MustBuild()

	out, _ := json.Marshal(user.Document())
	fmt.Println(string(out))
	// Output: {"type":"object","properties":{"age":{"type":"integer","minimum":0},"name":{"type":"string","minLength":1}},"required":["name"]}
}
