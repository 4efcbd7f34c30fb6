package utils

import (
	"errors"
	"fmt"
)

// ErrorKind -> jenis kegagalan yang stabil untuk client
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindStateConflict ErrorKind = "state_conflict"
	KindInternal      ErrorKind = "internal"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is -> dua AppError sama jika kind dan message sama
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrNotFound      = &AppError{Kind: KindNotFound, Message: "Not found"}
	ErrCafeClosed    = &AppError{Kind: KindStateConflict, Message: "Cafe is closed"}
	ErrNoItems       = &AppError{Kind: KindValidation, Message: "No Items"}
	ErrInvalidItem   = &AppError{Kind: KindValidation, Message: "Invalid Item"}
	ErrInvalidStatus = &AppError{Kind: KindStateConflict, Message: "Invalid Status"}
	ErrInvalidRating = &AppError{Kind: KindStateConflict, Message: "Invalid Rating"}
	ErrOrderLocked   = &AppError{Kind: KindStateConflict, Message: "Order already placed"}
	ErrAlreadyRated  = &AppError{Kind: KindStateConflict, Message: "Already rated"}
	ErrNotCompleted  = &AppError{Kind: KindStateConflict, Message: "Order is not completed"}
	ErrUnauthorized  = &AppError{Kind: KindValidation, Message: "Unauthorised Access"}
)

// NotFound -> ErrNotFound dengan nama entitas
func NotFound(entity string) error {
	return &AppError{Kind: KindNotFound, Message: "Not found", Field: entity}
}

// Validation -> kesalahan payload yang bisa diperbaiki client
func Validation(field, message string) error {
	return &AppError{Kind: KindValidation, Message: message, Field: field}
}

// Internal -> bungkus error store/transport, detail tidak dikirim ke client
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &AppError{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf -> kind dari error, internal jika bukan AppError
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
