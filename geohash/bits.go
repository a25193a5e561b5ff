package geohash

// GridIndex holds the de-interleaved bits of a code: the cell's column (Lon)
// and row (Lat) in the grid of its precision.
type GridIndex struct {
	Lat uint64 `json:"lat"`
	Lon uint64 `json:"lon"`
}

// Add translates g by dx columns and dy rows. Arithmetic wraps, and Join
// keeps only the low bits of each axis, so stepping past an edge lands on
// the opposite edge rather than failing.
func (g GridIndex) Add(dx, dy int64) GridIndex {
	return GridIndex{
		Lat: uint64(int64(g.Lat) + dy),
		Lon: uint64(int64(g.Lon) + dx),
	}
}

// axisBits returns how many of a code's bits belong to latitude and longitude.
// When the total is odd the extra bit is longitude's.
func axisBits(precision uint) (latBits, lonBits uint) {
	nbits := precision * bitsPerSymbol
	latBits = nbits / 2
	return latBits, nbits - latBits
}

// Split de-interleaves code into its grid indices.
func Split(code string) (GridIndex, error) {
	v, err := codeValue(code)
	if err != nil {
		return GridIndex{}, err
	}
	var g GridIndex
	i := uint(len(code)) * bitsPerSymbol
	for i >= 2 {
		i--
		g.Lon = g.Lon<<1 | (v>>i)&1
		i--
		g.Lat = g.Lat<<1 | (v>>i)&1
	}
	if i == 1 {
		g.Lon = g.Lon<<1 | v&1
	}
	return g, nil
}

// Join interleaves g back into a code of the given precision.
func Join(g GridIndex, precision uint) (string, error) {
	if err := validPrecision(precision); err != nil {
		return "", err
	}
	iLat, iLon := axisBits(precision)
	var v uint64
	for iLat != 0 {
		iLon--
		v = v<<1 | (g.Lon>>iLon)&1
		iLat--
		v = v<<1 | (g.Lat>>iLat)&1
	}
	if iLon == 1 {
		v = v<<1 | g.Lon&1
	}
	return valueCode(v, precision), nil
}
