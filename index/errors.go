package index

import (
	"github.com/marekgalovic/annindex/index/space"

	"github.com/pkg/errors"
)

var (
	ErrDimensionMismatch      error = space.ErrDimensionMismatch
	ErrCapacityExceeded       error = errors.New("The number of elements exceeds the specified limit")
	ErrLabelNotFound          error = errors.New("Label not found")
	ErrInvalidArgument        error = errors.New("Invalid argument")
	ErrReplaceDeletedDisabled error = errors.Wrap(ErrInvalidArgument, "Replacement of deleted elements is disabled")
	ErrAllocationFailure      error = errors.New("Not enough memory")
	ErrCorruptIndexFile       error = errors.New("Corrupt index file")
	ErrInsufficientResults    error = errors.New("Index returned fewer results than requested")
)

func corrupt(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorruptIndexFile, format, args...)
}
