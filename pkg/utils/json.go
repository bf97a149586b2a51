package utils

import "encoding/json"

func Unmarshal[T any](data []byte) (*T, error) {
	var unm T
	if err := json.Unmarshal(data, &unm); err != nil {
		return nil, err
	}
	return &unm, nil
}

// use only for values that always marshal (no chans, funcs, cycles)
func MustMarshal(v any) []byte {
	m, _ := json.Marshal(v)
	return m
}
