package geometry

// Transform maps a shape to another shape
type Transform func(Shape) Shape

func identity(s Shape) Shape { return s }

// pipelines are the eight elements of the square's dihedral group, each
// applied left to right and finished with Normalize
var pipelines = [][]Transform{
	{identity},
	{Rotate, Normalize},
	{Rotate, Rotate, Normalize},
	{Rotate, Rotate, Rotate, Normalize},
	{Flip, Normalize},
	{Flip, Rotate, Normalize},
	{Flip, Rotate, Rotate, Normalize},
	{Flip, Rotate, Rotate, Rotate, Normalize},
}

// Apply runs the transforms in order
func Apply(s Shape, transforms ...Transform) Shape {
	for _, t := range transforms {
		s = t(s)
	}
	return s
}

// DeriveOrientations returns the distinct rotations and reflections of base.
// The result has between 1 and 8 entries; the first one is base itself, so
// callers should pass a canonical shape.
func DeriveOrientations(base Shape) []Shape {
	result := make([]Shape, 0, len(pipelines))
	for _, pipeline := range pipelines {
		candidate := Apply(base, pipeline...)
		if !containsEqual(result, candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

func containsEqual(shapes []Shape, s Shape) bool {
	for _, existing := range shapes {
		if Equal(existing, s) {
			return true
		}
	}
	return false
}
