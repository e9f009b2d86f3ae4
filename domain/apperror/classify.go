package apperror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"runtime"
	"strings"
	"syscall"

	"github.com/prasetyowira/kerjaku/constant"
)

// StatusCarrier is implemented by transport errors that carry an HTTP status
// code. The remote client's error type satisfies it.
type StatusCarrier interface {
	error
	StatusCode() int
	URL() string
	Body() string
}

// Classify converts any fault into exactly one AppError variant. The op tag
// names the operation that raised the fault and is folded into the message of
// unclassifiable errors. Classification is pure, deterministic, and keeps the
// original fault reachable through Unwrap.
func Classify(err error, op string) AppError {
	// Already classified; pass through unchanged.
	var ae AppError
	if errors.As(err, &ae) {
		return ae
	}

	var sc StatusCarrier
	if errors.As(err, &sc) {
		return classifyStatus(sc)
	}

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		ne := NewNetwork(constant.ErrCodeNetTimeout, fmt.Sprintf("%s timed out", op), err)
		ne.IsConnection = true
		return ne
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		ne := NewNetwork(constant.ErrCodeNetUnreachable, fmt.Sprintf("%s could not reach the host", op), err)
		ne.IsConnection = true
		return ne
	}

	if errors.Is(err, os.ErrPermission) {
		return NewSecurity(constant.ErrCodeAuthExpired, constant.SecurityDomainAuthentication,
			fmt.Sprintf("%s was denied", op), err)
	}

	if isIOFault(err) {
		ne := NewNetwork(constant.ErrCodeNetIOFailure, fmt.Sprintf("%s failed with an I/O error", op), err)
		ne.IsConnection = true
		return ne
	}

	ue := &UnexpectedError{
		base: base{
			code:    constant.ErrCodeUnexpected,
			message: fmt.Sprintf("%s failed: %v", op, err),
			cause:   err,
		},
		StackTrace: captureStackTrace(1),
	}
	return ue
}

// classifyStatus maps an HTTP status code onto the taxonomy.
func classifyStatus(sc StatusCarrier) AppError {
	status := sc.StatusCode()
	switch {
	case status == 401:
		return NewSecurity(constant.ErrCodeAuthExpired, constant.SecurityDomainAuthentication,
			"authentication required", sc)
	case status == 403:
		return NewSecurity(constant.ErrCodeAuthForbidden, constant.SecurityDomainAuthorization,
			"access forbidden", sc)
	case status == 404:
		ne := NewNetwork(constant.ErrCodeNetNotFound, "resource not found", sc)
		ne.HTTPStatus = status
		ne.RequestURL = sc.URL()
		ne.ResponseBody = sc.Body()
		return ne
	case status >= 500 && status <= 599:
		ne := NewNetwork(constant.ErrCodeNetServerError, fmt.Sprintf("server error (%d)", status), sc)
		ne.HTTPStatus = status
		ne.RequestURL = sc.URL()
		ne.ResponseBody = sc.Body()
		return ne
	default:
		ne := NewNetwork(constant.ErrCodeNetHTTPFailure, fmt.Sprintf("request failed (%d)", status), sc)
		ne.HTTPStatus = status
		ne.RequestURL = sc.URL()
		ne.ResponseBody = sc.Body()
		return ne
	}
}

func isIOFault(err error) bool {
	var opErr *net.OpError
	var pathErr *os.PathError
	var errno syscall.Errno
	return errors.As(err, &opErr) ||
		errors.As(err, &pathErr) ||
		errors.As(err, &errno) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe)
}

// captureStackTrace formats the current goroutine stack, skipping runtime
// frames and this package's own frames.
func captureStackTrace(skip int) string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}
