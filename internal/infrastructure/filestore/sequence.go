package filestore

// NextCode devuelve el siguiente código libre: el máximo existente + 1, o 1 si no hay elementos.
func NextCode[T any](items []T, code func(T) int) int {
	maxCode := 0
	for _, it := range items {
		if c := code(it); c > maxCode {
			maxCode = c
		}
	}
	return maxCode + 1
}
