package datatypes

// UvInfo contains UV mapping information.
type UvInfo struct {
	UvOrigin Vec3
	UAxis    Vec3
	VAxis    Vec3
}
