// Package errhandler converts classified errors into telemetry and
// presentation-ready messages. It is the single place that decides the
// user-visibility and severity of a failure.
package errhandler

import (
	"errors"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
)

// Severity orders how loudly an error is presented. INFO/WARNING render as
// transient banners, ERROR/CRITICAL as blocking dialogs.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

// Message is the presentation record for one handled error. It is consumed
// once by a UI layer and then discarded.
type Message struct {
	Title      string
	Text       string
	Action     Action
	Level      Severity
	Metadata   map[string]string
	ShouldShow bool
}

// AnalyticsSink accepts write-only analytics events.
type AnalyticsSink interface {
	Event(name string, params map[string]string)
}

// CrashSink accepts write-only crash reports.
type CrashSink interface {
	Record(err error)
}

// Handler turns an AppError into a log entry, conditional telemetry, and a
// Message. Collaborators are injected; the handler holds no global state.
type Handler struct {
	analytics AnalyticsSink
	crash     CrashSink
}

// NewHandler creates a Handler with the given telemetry sinks.
func NewHandler(analytics AnalyticsSink, crash CrashSink) *Handler {
	return &Handler{analytics: analytics, crash: crash}
}

// Handle logs, records telemetry for, and renders one classified error.
func (h *Handler) Handle(ae apperror.AppError) Message {
	h.log(ae)
	h.track(ae)
	h.report(ae)
	return h.present(ae)
}

func (h *Handler) log(ae apperror.AppError) {
	info := appLogger.LoggerInfo{
		ContextFunction: constant.CtxErrHandler,
		Error: &appLogger.ErrorInfo{
			Code:    ae.Code(),
			Variant: ae.Variant(),
			Message: ae.Message(),
		},
	}
	if cause := ae.Unwrap(); cause != nil {
		info.Data = map[string]interface{}{constant.DataData: cause.Error()}
	}
	appLogger.Error("Handled classified error", info)
}

func (h *Handler) track(ae apperror.AppError) {
	event := constant.EventErrorOccurred
	if ae.IsCritical() {
		event = constant.EventCriticalError
	}
	h.analytics.Event(event, map[string]string{
		"code":     ae.Code(),
		"category": ae.Variant(),
		"message":  ae.Message(),
	})
}

// report sends a crash record unless the error class is too noisy to be
// worth one: validation and security errors are expected, and network
// errors only matter when the server itself failed.
func (h *Handler) report(ae apperror.AppError) {
	switch e := ae.(type) {
	case *apperror.ValidationError, *apperror.SecurityError:
		return
	case *apperror.NetworkError:
		if e.HTTPStatus < 500 || e.HTTPStatus > 599 {
			return
		}
	}

	cause := ae.Unwrap()
	if cause == nil {
		cause = errors.New(ae.Message())
	}
	h.crash.Record(cause)
}

func (h *Handler) present(ae apperror.AppError) Message {
	switch e := ae.(type) {
	case *apperror.NetworkError:
		return presentNetwork(e)
	case *apperror.DatabaseError:
		return presentDatabase(e)
	case *apperror.ValidationError:
		return Message{
			Title:      constant.TitleValidationError,
			Text:       e.UserMessage(),
			Action:     Dismiss{},
			Level:      SeverityWarning,
			Metadata:   map[string]string{"field": e.Field},
			ShouldShow: true,
		}
	case *apperror.SecurityError:
		return presentSecurity(e)
	case *apperror.BusinessError:
		return Message{
			Title:      constant.TitleBusinessError,
			Text:       e.UserMessage(),
			Action:     Dismiss{},
			Level:      SeverityWarning,
			Metadata:   map[string]string{"domain": e.Domain},
			ShouldShow: true,
		}
	default:
		return Message{
			Title:      constant.TitleUnexpectedError,
			Text:       constant.UserMsgUnexpected,
			Action:     Multiple{Primary: Retry{}, Secondary: Custom{Text: constant.ActionLabelSupport, Route: constant.RouteSupport}},
			Level:      SeverityCritical,
			Metadata:   map[string]string{"code": ae.Code()},
			ShouldShow: true,
		}
	}
}

func presentNetwork(e *apperror.NetworkError) Message {
	msg := Message{
		Title:      constant.TitleNetworkError,
		Metadata:   map[string]string{"code": e.Code()},
		ShouldShow: true,
	}

	switch {
	case e.IsConnection:
		msg.Text = constant.UserMsgCheckConnection
		msg.Action = Multiple{Primary: Retry{}, Secondary: Dismiss{}}
		msg.Level = SeverityWarning
	case e.HTTPStatus == 401:
		// Handled by forced re-authentication elsewhere; never shown.
		msg.Text = constant.UserMsgSessionExpired
		msg.Action = Custom{Text: constant.ActionLabelLogin, Route: constant.RouteLogin}
		msg.Level = SeverityInfo
		msg.ShouldShow = false
	case e.HTTPStatus == 403:
		msg.Text = constant.UserMsgPermissionDenied
		msg.Action = Dismiss{}
		msg.Level = SeverityError
	case e.HTTPStatus == 404:
		msg.Text = constant.UserMsgNotFound
		msg.Action = Retry{}
		msg.Level = SeverityError
	case e.HTTPStatus >= 500 && e.HTTPStatus <= 599:
		msg.Text = constant.UserMsgServerError
		msg.Action = Retry{}
		msg.Level = SeverityCritical
	default:
		msg.Text = e.UserMessage()
		msg.Action = Retry{}
		msg.Level = SeverityError
	}
	return msg
}

func presentDatabase(e *apperror.DatabaseError) Message {
	var text string
	switch e.Operation {
	case constant.DBOpInsert:
		text = constant.UserMsgDBInsert
	case constant.DBOpQuery, constant.DBOpCount:
		text = constant.UserMsgDBQuery
	case constant.DBOpDelete, constant.DBOpClear:
		text = constant.UserMsgDBDelete
	case constant.DBOpUpdate:
		text = constant.UserMsgDBUpdate
	default:
		text = constant.UserMsgDBOther
	}

	return Message{
		Title:      constant.TitleDatabaseError,
		Text:       text,
		Action:     Multiple{Primary: Retry{}, Secondary: Dismiss{}},
		Level:      SeverityError,
		Metadata:   map[string]string{"entity": e.Entity, "operation": e.Operation},
		ShouldShow: true,
	}
}

func presentSecurity(e *apperror.SecurityError) Message {
	msg := Message{
		Title:    constant.TitleSecurityError,
		Metadata: map[string]string{"domain": e.Domain},
	}

	if e.Domain == constant.SecurityDomainAuthentication {
		msg.Text = constant.UserMsgSessionExpired
		msg.Action = Custom{Text: constant.ActionLabelLogin, Route: constant.RouteLogin}
		msg.Level = SeverityError
		msg.ShouldShow = true
		return msg
	}

	// Non-authentication security errors are resolved out of band and are
	// not surfaced to the user.
	msg.Text = constant.UserMsgPermissionDenied
	msg.Action = Dismiss{}
	msg.Level = SeverityInfo
	msg.ShouldShow = false
	return msg
}
