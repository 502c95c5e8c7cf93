package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrStorageRead        = errors.New("storage read failed")
	ErrStorageWrite       = errors.New("storage write failed")
)

// InvalidTransactionError rejects a submission before it reaches the ledger.
type InvalidTransactionError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidTransactionError) Error() string {
	if e.Field == "" {
		return "invalid transaction: " + e.Reason
	}
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error { return e.Err }

func (e *InvalidTransactionError) Is(target error) bool { return target == ErrInvalidTransaction }

// StorageReadError reports persisted data that exists but cannot be read or
// does not match the ledger schema. Row is 1-based and counts the header;
// zero means the error is not tied to a row.
type StorageReadError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *StorageReadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("read %s: row %d, column %s: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("read %s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

func (e *StorageReadError) Is(target error) bool { return target == ErrStorageRead }

// StorageWriteError reports a failed save. The ledger passed to Save must be
// treated as unsaved.
type StorageWriteError struct {
	Source string
	Err    error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Source, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrStorageWrite }
