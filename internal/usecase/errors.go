package usecase

import "errors"

var (
	ErrNoSession     = errors.New("no day is open for editing")
	ErrUnknownField  = errors.New("unknown field")
	ErrFieldLocked   = errors.New("field is locked in this mode")
	ErrRecordSynced  = errors.New("record is synced; only a re-sync can overwrite it")
	ErrDateLocked    = errors.New("date is being edited elsewhere")
	ErrInvalidMode   = errors.New("invalid mode")
	ErrTargetInvalid = errors.New("declared days linked to a real day cannot be saved to another date")
)
