package dispatch

// Dedup drops repeated paths, keeping the first occurrence of each. Paths
// are compared as given: "a" and "./a" are distinct.
func Dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	ret := make([]string, 0, len(paths))
	for _, pathname := range paths {
		if _, exists := seen[pathname]; exists {
			continue
		}
		seen[pathname] = struct{}{}
		ret = append(ret, pathname)
	}
	return ret
}
