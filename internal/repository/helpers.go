package repository

// removeID deletes the first occurrence of id, preserving order.
func removeID[T comparable](ids []T, id T) []T {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
