package geohash

// neighborOffsets are the (dx, dy) steps for N, NW, W, SW, S, SE, E, NE.
var neighborOffsets = [8][2]int64{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns code followed by its eight surrounding cells in the order
// north, north-west, west, south-west, south, south-east, east, north-east.
//
// Cells are found by grid translation, so at the poles and the antimeridian
// they wrap to the opposite edge of the grid.
func Neighbors(code string) ([]string, error) {
	g, err := Split(code)
	if err != nil {
		return nil, err
	}
	precision := uint(len(code))
	out := make([]string, 0, len(neighborOffsets)+1)
	out = append(out, code)
	for _, d := range neighborOffsets {
		n, err := Join(g.Add(d[0], d[1]), precision)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ManyNeighbors concatenates Neighbors over codes. Codes 9i to 9i+8 of
// the result belong to codes[i].
func ManyNeighbors(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes)*(len(neighborOffsets)+1))
	for _, c := range codes {
		ns, err := Neighbors(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}
