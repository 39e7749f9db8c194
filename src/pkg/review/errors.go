package review

import "errors"

var (
	ErrUnsupportedType   = errors.New("review: reviewable type not yet wired to a dispatcher")
	ErrUnsupportedAction = errors.New("review: action not recognized")
)
