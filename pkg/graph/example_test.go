package graph_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func ExampleWrite() {
	g := model.Build(
		[]model.Container{{ID: "intake", Name: "Intake"}, {ID: "review", Name: "Review"}},
		nil,
		[]model.Relationship{{Source: "intake", Target: "review", Label: "hands off"}},
	)
	v, _ := visibility.Resolve(context.Background(), g, "", visibility.Options{})

	var buf bytes.Buffer
	if err := graph.Write(graph.FromView(v, nil, nil), &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "intake",
	//       "type": "leaf",
	//       "position": {
	//         "x": 0,
	//         "y": 0
	//       },
	//       "data": {
	//         "label": "Intake",
	//         "role": "leaf"
	//       }
	//     },
	//     {
	//       "id": "review",
	//       "type": "leaf",
	//       "position": {
	//         "x": 0,
	//         "y": 0
	//       },
	//       "data": {
	//         "label": "Review",
	//         "role": "leaf"
	//       }
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "id": "intake->review",
	//       "source": "intake",
	//       "target": "review",
	//       "data": {
	//         "label": "hands off"
	//       }
	//     }
	//   ]
	// }
}
