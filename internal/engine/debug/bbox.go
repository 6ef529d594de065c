// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/corridor/internal/engine/picking"

// BoxLineVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const BoxLineVertexCount = 24

// DefaultBoxPadding is the gap left between a hovered node and its outline.
const DefaultBoxPadding = 0.02

// BoxLines returns GL_LINES vertices outlining box, grown by padding on
// every side. Format is [x, y, z] per vertex.
func BoxLines(box picking.AABB, padding float32) []float32 {
	return AppendBoxLines(nil, box, padding)
}

// AppendBoxLines is BoxLines appending to dst.
func AppendBoxLines(dst []float32, box picking.AABB, padding float32) []float32 {
	minX, minY, minZ := box.Min.X-padding, box.Min.Y-padding, box.Min.Z-padding
	maxX, maxY, maxZ := box.Max.X+padding, box.Max.Y+padding, box.Max.Z+padding

	return append(dst,
		// Bottom
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Verticals
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	)
}
