package nodelink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/nodelink"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func ExampleToDOT() {
	g := model.Build(
		[]model.Container{{ID: "intake"}, {ID: "review"}},
		nil,
		[]model.Relationship{{Source: "intake", Target: "review"}},
	)
	v, _ := visibility.Resolve(context.Background(), g, "", visibility.Options{})

	for _, line := range strings.Split(nodelink.ToDOT(v, nodelink.Options{}), "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "intake" -> "review";
}
