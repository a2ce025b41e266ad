package sliceutils

func Map[T any, U any](input []T, mapper func(T) U) []U {
	output := make([]U, len(input))
	for i, v := range input {
		output[i] = mapper(v)
	}
	return output
}

// MapErr maps input in order and stops at the first error. The mapper receives
// the element index so callers can report where a failure happened.
func MapErr[T any, U any](input []T, mapper func(int, T) (U, error)) ([]U, error) {
	output := make([]U, len(input))
	for i, v := range input {
		mapped, err := mapper(i, v)
		if err != nil {
			return nil, err
		}
		output[i] = mapped
	}
	return output, nil
}
