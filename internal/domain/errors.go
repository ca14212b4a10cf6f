package domain

import "errors"

var (
	ErrBatchNotFound     = errors.New("batch not found")
	ErrKindMismatch      = errors.New("transaction kind mismatch")
	ErrUnknownKind       = errors.New("unknown transaction kind")
	ErrDuplicateEvent    = errors.New("duplicate event")
	ErrInvalidPageParams = errors.New("invalid page parameters")
)
