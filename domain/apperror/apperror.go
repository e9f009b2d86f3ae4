// Package apperror defines the closed error taxonomy used across the
// application. Every failure surfaced by a repository is exactly one of the
// eight variants below; anything unclassifiable becomes UnexpectedError.
package apperror

import (
	"fmt"
	"strings"

	"github.com/prasetyowira/kerjaku/constant"
)

// AppError is the sealed interface implemented by every taxonomy variant.
type AppError interface {
	error
	// Code returns the category-prefixed error code, e.g. "NET_001".
	Code() string
	// Message returns the human-readable error message.
	Message() string
	// Unwrap returns the underlying cause, if any.
	Unwrap() error
	// Variant returns the taxonomy variant name used in logs and analytics.
	Variant() string
	// IsCritical reports whether the error demands operator attention.
	IsCritical() bool
	// IsRecoverable reports whether a retry could plausibly succeed.
	IsRecoverable() bool
	// UserMessage returns a redacted, user-safe rendering of the error.
	UserMessage() string

	sealed()
}

// base carries the fields shared by every variant.
type base struct {
	code    string
	message string
	cause   error
}

func (b base) Error() string {
	if b.cause != nil {
		return fmt.Sprintf("%s: %v", b.message, b.cause)
	}
	return b.message
}

func (b base) Code() string    { return b.code }
func (b base) Message() string { return b.message }
func (b base) Unwrap() error   { return b.cause }
func (b base) sealed()         {}

// FileOp identifies the file operation a FileError relates to.
type FileOp string

const (
	FileRead   FileOp = "READ"
	FileWrite  FileOp = "WRITE"
	FileDelete FileOp = "DELETE"
	FileCreate FileOp = "CREATE"
	FileMove   FileOp = "MOVE"
	FileCopy   FileOp = "COPY"
)

// CacheOp identifies the cache operation a CacheError relates to.
type CacheOp string

const (
	CacheGet    CacheOp = "GET"
	CachePut    CacheOp = "PUT"
	CacheRemove CacheOp = "REMOVE"
	CacheClear  CacheOp = "CLEAR"
)

// NetworkError represents a transport-layer failure.
type NetworkError struct {
	base
	HTTPStatus   int // zero when no status was received
	IsConnection bool
	RequestURL   string
	ResponseBody string
}

// NewNetwork creates a NetworkError.
func NewNetwork(code, message string, cause error) *NetworkError {
	return &NetworkError{base: base{code: code, message: message, cause: cause}}
}

func (e *NetworkError) Variant() string { return constant.ErrVariantNetwork }

func (e *NetworkError) IsCritical() bool {
	return e.HTTPStatus >= 500 && e.HTTPStatus <= 599
}

func (e *NetworkError) IsRecoverable() bool {
	return e.IsConnection || e.IsCritical()
}

func (e *NetworkError) UserMessage() string {
	if e.IsConnection {
		return constant.UserMsgCheckConnection
	}
	return e.message
}

// DatabaseError represents a storage-engine failure in the local cache store.
type DatabaseError struct {
	base
	Entity      string
	Operation   string // insert|query|delete|update|count|clear
	EngineError string
}

// NewDatabase creates a DatabaseError for the given entity and operation.
func NewDatabase(entity, operation string, cause error) *DatabaseError {
	engineText := ""
	if cause != nil {
		engineText = cause.Error()
	}
	return &DatabaseError{
		base: base{
			code:    dbCodeFor(operation),
			message: fmt.Sprintf("database %s failed for %s", operation, entity),
			cause:   cause,
		},
		Entity:      entity,
		Operation:   operation,
		EngineError: engineText,
	}
}

func dbCodeFor(operation string) string {
	switch operation {
	case constant.DBOpInsert:
		return constant.ErrCodeDBInsert
	case constant.DBOpQuery:
		return constant.ErrCodeDBQuery
	case constant.DBOpDelete:
		return constant.ErrCodeDBDelete
	case constant.DBOpUpdate:
		return constant.ErrCodeDBUpdate
	case constant.DBOpCount:
		return constant.ErrCodeDBCount
	default:
		return constant.ErrCodeDBClear
	}
}

func (e *DatabaseError) Variant() string { return constant.ErrVariantDatabase }

func (e *DatabaseError) IsCritical() bool {
	return strings.Contains(strings.ToLower(e.EngineError), "corrupt")
}

func (e *DatabaseError) IsRecoverable() bool { return true }

func (e *DatabaseError) UserMessage() string { return e.message }

// ValidationError represents rejected user input.
type ValidationError struct {
	base
	Field      string
	Value      interface{}
	Violations []string
}

// NewValidation creates a ValidationError for a single field.
func NewValidation(field, message string, value interface{}, violations ...string) *ValidationError {
	return &ValidationError{
		base:       base{code: constant.ErrCodeValidation, message: message},
		Field:      field,
		Value:      value,
		Violations: violations,
	}
}

func (e *ValidationError) Variant() string     { return constant.ErrVariantValidation }
func (e *ValidationError) IsCritical() bool    { return false }
func (e *ValidationError) IsRecoverable() bool { return false }
func (e *ValidationError) UserMessage() string { return e.message }

// SecurityError represents an authentication or authorization failure.
type SecurityError struct {
	base
	Domain              string
	RequiredPermissions []string
}

// NewSecurity creates a SecurityError in the given security domain.
func NewSecurity(code, domain, message string, cause error) *SecurityError {
	return &SecurityError{
		base:   base{code: code, message: message, cause: cause},
		Domain: domain,
	}
}

func (e *SecurityError) Variant() string  { return constant.ErrVariantSecurity }
func (e *SecurityError) IsCritical() bool { return true }

func (e *SecurityError) IsRecoverable() bool {
	return e.Domain == constant.SecurityDomainAuthentication
}

func (e *SecurityError) UserMessage() string {
	switch e.Domain {
	case constant.SecurityDomainAuthentication:
		return constant.UserMsgSessionExpired
	case constant.SecurityDomainAuthorization:
		return constant.UserMsgPermissionDenied
	default:
		return e.message
	}
}

// FileError represents a filesystem failure.
type FileError struct {
	base
	Path      string
	Operation FileOp
}

// NewFile creates a FileError for the given path and operation.
func NewFile(path string, op FileOp, cause error) *FileError {
	return &FileError{
		base: base{
			code:    constant.ErrCodeFile,
			message: fmt.Sprintf("file %s failed for %s", strings.ToLower(string(op)), path),
			cause:   cause,
		},
		Path:      path,
		Operation: op,
	}
}

func (e *FileError) Variant() string     { return constant.ErrVariantFile }
func (e *FileError) IsCritical() bool    { return false }
func (e *FileError) IsRecoverable() bool { return e.Operation != FileDelete }
func (e *FileError) UserMessage() string { return e.message }

// CacheError represents a failure of a cache bookkeeping operation.
type CacheError struct {
	base
	Key       string
	Operation CacheOp
}

// NewCache creates a CacheError for the given key and operation.
func NewCache(key string, op CacheOp, cause error) *CacheError {
	return &CacheError{
		base: base{
			code:    constant.ErrCodeCache,
			message: fmt.Sprintf("cache %s failed for %s", strings.ToLower(string(op)), key),
			cause:   cause,
		},
		Key:       key,
		Operation: op,
	}
}

func (e *CacheError) Variant() string     { return constant.ErrVariantCache }
func (e *CacheError) IsCritical() bool    { return false }
func (e *CacheError) IsRecoverable() bool { return e.Operation != CacheClear }
func (e *CacheError) UserMessage() string { return e.message }

// BusinessError represents a violated business rule.
type BusinessError struct {
	base
	Domain  string
	Details map[string]interface{}
}

// NewBusiness creates a BusinessError tagged with a business domain.
func NewBusiness(domain, message string, details map[string]interface{}) *BusinessError {
	return &BusinessError{
		base:    base{code: constant.ErrCodeBusiness, message: message},
		Domain:  domain,
		Details: details,
	}
}

func (e *BusinessError) Variant() string     { return constant.ErrVariantBusiness }
func (e *BusinessError) IsCritical() bool    { return false }
func (e *BusinessError) IsRecoverable() bool { return false }
func (e *BusinessError) UserMessage() string { return e.message }

// UnexpectedError is the catch-all for faults no other variant covers.
type UnexpectedError struct {
	base
	StackTrace string
}

// NewUnexpected creates an UnexpectedError capturing the current stack.
func NewUnexpected(message string, cause error) *UnexpectedError {
	return &UnexpectedError{
		base:       base{code: constant.ErrCodeUnexpected, message: message, cause: cause},
		StackTrace: captureStackTrace(1),
	}
}

func (e *UnexpectedError) Variant() string     { return constant.ErrVariantUnexpected }
func (e *UnexpectedError) IsCritical() bool    { return true }
func (e *UnexpectedError) IsRecoverable() bool { return false }
func (e *UnexpectedError) UserMessage() string { return e.message }
