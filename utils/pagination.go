package utils

import "errors"

const (
	DefaultTake    = 20
	DefaultMaxTake = 100
)

var ErrInvalidPagination = errors.New("skip and take must not be negative")

// Pagination adalah query ?skip=&take= pada endpoint list.
type Pagination struct {
	Skip int `form:"skip,default=0"`
	Take int `form:"take,default=20"`
}

// Normalize memvalidasi nilai skip/take dan membatasi take ke maxTake.
func (p Pagination) Normalize(maxTake int) (Pagination, error) {
	if p.Skip < 0 || p.Take < 0 {
		return p, ErrInvalidPagination
	}
	if maxTake <= 0 {
		maxTake = DefaultMaxTake
	}
	if p.Take > maxTake {
		p.Take = maxTake
	}
	return p, nil
}
