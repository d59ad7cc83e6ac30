package utils

import (
	"math"
)

// DataPagination returns one page of origin. A pageSize of 0 or less returns everything
func DataPagination[T any](origin []T, page, pageSize int32) []T {
	if pageSize <= 0 {
		return origin
	}

	if page < 1 {
		return make([]T, 0)
	}

	total := int32(len(origin))
	start := (page - 1) * pageSize
	end := page * pageSize

	if start > total {
		return make([]T, 0)
	}

	if end > total {
		end = total
	}

	return origin[start:end]
}

// Pages is the number of pages needed to hold total items
func Pages(total int, pageSize int32) int32 {
	if pageSize <= 0 {
		if total == 0 {
			return 0
		}
		return 1
	}
	return int32(math.Ceil(float64(total) / float64(pageSize)))
}
