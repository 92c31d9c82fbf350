package sink

import (
	"encoding/json"

	"github.com/conceptatlas/atlas/pkg/render"
)

// MarshalScene serializes a scene to pretty-printed JSON for host UIs that
// do their own drawing.
func MarshalScene(scene *render.Scene) ([]byte, error) {
	return json.MarshalIndent(scene, "", "  ")
}
