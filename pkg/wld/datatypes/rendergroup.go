package datatypes

// RenderGroup represents a group of polygons sharing the same material.
type RenderGroup struct {
	PolygonCount  int
	MaterialIndex int
}
