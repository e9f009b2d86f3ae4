// Package result models the three-phase outcome of an asynchronous
// repository operation: loading, success with a value, or failure with a
// classified error.
package result

import (
	"github.com/prasetyowira/kerjaku/domain/apperror"
)

type kind int

const (
	kindLoading kind = iota
	kindSuccess
	kindError
)

// Result holds exactly one of: nothing (loading), a value, or an AppError.
type Result[T any] struct {
	kind  kind
	value T
	err   apperror.AppError
}

// Loading returns the in-flight Result.
func Loading[T any]() Result[T] {
	return Result[T]{kind: kindLoading}
}

// Success returns a Result carrying a value.
func Success[T any](value T) Result[T] {
	return Result[T]{kind: kindSuccess, value: value}
}

// Failure returns a Result carrying a classified error. The error must be
// non-nil.
func Failure[T any](err apperror.AppError) Result[T] {
	return Result[T]{kind: kindError, err: err}
}

// IsLoading reports whether the operation is still in flight.
func (r Result[T]) IsLoading() bool { return r.kind == kindLoading }

// IsSuccess reports whether the operation produced a value.
func (r Result[T]) IsSuccess() bool { return r.kind == kindSuccess }

// IsError reports whether the operation failed.
func (r Result[T]) IsError() bool { return r.kind == kindError }

// Get returns the value and whether the Result is a success.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.kind == kindSuccess
}

// Err returns the classified error, or nil for loading/success.
func (r Result[T]) Err() apperror.AppError {
	if r.kind != kindError {
		return nil
	}
	return r.err
}

// Fold runs exactly one of the three branches. Nil branches are skipped.
func (r Result[T]) Fold(onSuccess func(T), onError func(apperror.AppError), onLoading func()) {
	switch r.kind {
	case kindSuccess:
		if onSuccess != nil {
			onSuccess(r.value)
		}
	case kindError:
		if onError != nil {
			onError(r.err)
		}
	default:
		if onLoading != nil {
			onLoading()
		}
	}
}

// OnSuccess runs fn when the Result is a success and returns the receiver.
func (r Result[T]) OnSuccess(fn func(T)) Result[T] {
	if r.kind == kindSuccess {
		fn(r.value)
	}
	return r
}

// OnError runs fn when the Result is a failure and returns the receiver.
func (r Result[T]) OnError(fn func(apperror.AppError)) Result[T] {
	if r.kind == kindError {
		fn(r.err)
	}
	return r
}

// OnLoading runs fn when the Result is loading and returns the receiver.
func (r Result[T]) OnLoading(fn func()) Result[T] {
	if r.kind == kindLoading {
		fn()
	}
	return r
}

// Map applies fn to a success value; loading and error pass through with
// the same variant.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.kind {
	case kindSuccess:
		return Success(fn(r.value))
	case kindError:
		return Failure[U](r.err)
	default:
		return Loading[U]()
	}
}
