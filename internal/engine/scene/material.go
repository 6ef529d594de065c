package scene

// Material is a flat RGBA color.
type Material struct {
	Name  string
	Color [4]float32
}

// RGB returns an opaque material.
func RGB(name string, r, g, b float32) Material {
	return Material{Name: name, Color: [4]float32{r, g, b, 1}}
}
