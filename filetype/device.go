package filetype

// Major and Minor decode a raw device identifier using the historical
// layout: major in bits 8-19, minor in the low 8 bits.
func Major(rdev uint64) uint64 {
	return (rdev >> 8) & 0xfff
}

func Minor(rdev uint64) uint64 {
	return rdev & 0xff
}
