package server

import "strconv"

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

func parsePageSize(raw string) int32 {
	if raw == "" {
		return defaultPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return int32(size)
}
