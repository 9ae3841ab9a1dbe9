package reactor

import "errors"

var (
	ErrInvalidInput       = errors.New("reactor: invalid input")
	ErrInvalidComposition = errors.New("reactor: invalid fuel composition")
	ErrInvalidParams      = errors.New("reactor: invalid physical parameters")
)
