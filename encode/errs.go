package encode

import "errors"

var (
	ErrEncoding       = errors.New("encoding error")
	ErrInvalidKeyword = errors.New("invalid keyword")
)
