package errhandler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
)

// recordingAnalytics captures events for assertions.
type recordingAnalytics struct {
	events []string
	params []map[string]string
}

func (r *recordingAnalytics) Event(name string, params map[string]string) {
	r.events = append(r.events, name)
	r.params = append(r.params, params)
}

// recordingCrash captures crash reports for assertions.
type recordingCrash struct {
	reports []error
}

func (r *recordingCrash) Record(err error) {
	r.reports = append(r.reports, err)
}

func newTestHandler() (*Handler, *recordingAnalytics, *recordingCrash) {
	analytics := &recordingAnalytics{}
	crash := &recordingCrash{}
	return NewHandler(analytics, crash), analytics, crash
}

func network(status int, connection bool) *apperror.NetworkError {
	ne := apperror.NewNetwork(constant.ErrCodeNetHTTPFailure, "request failed", errors.New("wire"))
	ne.HTTPStatus = status
	ne.IsConnection = connection
	return ne
}

func TestHandle_ConnectionError(t *testing.T) {
	handler, _, _ := newTestHandler()

	msg := handler.Handle(network(0, true))

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityWarning, msg.Level)
	assert.Equal(t, constant.UserMsgCheckConnection, msg.Text)
	assert.Equal(t, []string{"Retry", "Dismiss"}, Labels(msg.Action))
}

func TestHandle_Unauthorized_SuppressedWithLoginAction(t *testing.T) {
	handler, _, _ := newTestHandler()

	msg := handler.Handle(network(401, false))

	assert.False(t, msg.ShouldShow)
	assert.Equal(t, SeverityInfo, msg.Level)
	action, ok := msg.Action.(Custom)
	assert.True(t, ok)
	assert.Equal(t, constant.RouteLogin, action.Route)
	assert.True(t, action.RequiresNavigation())
}

func TestHandle_ServerError_CriticalWithRetry(t *testing.T) {
	handler, analytics, crash := newTestHandler()

	msg := handler.Handle(network(502, false))

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityCritical, msg.Level)
	assert.Equal(t, []string{"Retry"}, Labels(msg.Action))
	assert.Equal(t, []string{constant.EventCriticalError}, analytics.events)
	assert.Len(t, crash.reports, 1)
}

func TestHandle_NotFound(t *testing.T) {
	handler, _, crash := newTestHandler()

	msg := handler.Handle(network(404, false))

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityError, msg.Level)
	assert.Empty(t, crash.reports)
}

func TestHandle_Validation(t *testing.T) {
	handler, analytics, crash := newTestHandler()
	ve := apperror.NewValidation("otp", constant.ErrOTPLength, "1234")

	msg := handler.Handle(ve)

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityWarning, msg.Level)
	assert.Equal(t, constant.ErrOTPLength, msg.Text)
	assert.Equal(t, "otp", msg.Metadata["field"])
	assert.Equal(t, []string{constant.EventErrorOccurred}, analytics.events)
	// Validation errors never produce crash reports.
	assert.Empty(t, crash.reports)
}

func TestHandle_AuthenticationSecurity_VisibleWithLogin(t *testing.T) {
	handler, _, crash := newTestHandler()
	se := apperror.NewSecurity(constant.ErrCodeAuthExpired, constant.SecurityDomainAuthentication, "expired", nil)

	msg := handler.Handle(se)

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityError, msg.Level)
	assert.Equal(t, constant.UserMsgSessionExpired, msg.Text)
	assert.Empty(t, crash.reports)
}

func TestHandle_AuthorizationSecurity_Suppressed(t *testing.T) {
	handler, analytics, crash := newTestHandler()
	se := apperror.NewSecurity(constant.ErrCodeAuthForbidden, constant.SecurityDomainAuthorization, "no role", nil)

	msg := handler.Handle(se)

	assert.False(t, msg.ShouldShow)
	assert.Equal(t, SeverityInfo, msg.Level)
	assert.Equal(t, constant.UserMsgPermissionDenied, msg.Text)
	// Still tracked even though invisible.
	assert.Len(t, analytics.events, 1)
	assert.Empty(t, crash.reports)
}

func TestHandle_Database(t *testing.T) {
	handler, _, crash := newTestHandler()
	de := apperror.NewDatabase(constant.EntityJob, constant.DBOpQuery, errors.New("locked"))

	msg := handler.Handle(de)

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityError, msg.Level)
	assert.Equal(t, constant.EntityJob, msg.Metadata["entity"])
	assert.Equal(t, []string{"Retry", "Dismiss"}, Labels(msg.Action))
	assert.Len(t, crash.reports, 1)
}

func TestHandle_Business(t *testing.T) {
	handler, _, _ := newTestHandler()
	be := apperror.NewBusiness("ratings", "score must be between 1 and 5", nil)

	msg := handler.Handle(be)

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityWarning, msg.Level)
	assert.Equal(t, "score must be between 1 and 5", msg.Text)
}

func TestHandle_Unexpected(t *testing.T) {
	handler, analytics, crash := newTestHandler()
	ue := apperror.NewUnexpected("nil deref", errors.New("panic"))

	msg := handler.Handle(ue)

	assert.True(t, msg.ShouldShow)
	assert.Equal(t, SeverityCritical, msg.Level)
	assert.Equal(t, []string{constant.EventCriticalError}, analytics.events)
	assert.Len(t, crash.reports, 1)
}

func TestActions_Predicates(t *testing.T) {
	assert.False(t, Retry{}.RequiresNavigation())
	assert.False(t, Dismiss{}.IsDestructive())
	assert.True(t, GoBack{}.RequiresNavigation())
	assert.True(t, GoBack{}.IsDestructive())
	assert.False(t, Custom{Text: "OK"}.RequiresNavigation())
	assert.True(t, Custom{Text: "Login", Route: constant.RouteLogin}.RequiresNavigation())

	pair := Multiple{Primary: Retry{}, Secondary: GoBack{}}
	assert.True(t, pair.RequiresNavigation())
	assert.True(t, pair.IsDestructive())
	assert.Equal(t, "retry+go_back", pair.AnalyticsLabel())
}

func TestLabels_FlattensNested(t *testing.T) {
	nested := Multiple{
		Primary:   Retry{},
		Secondary: Multiple{Primary: Dismiss{}, Secondary: GoBack{}},
	}

	assert.Equal(t, []string{"Retry", "Dismiss", "Go Back"}, Labels(nested))
	assert.Nil(t, Labels(nil))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "INFO", SeverityInfo.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
}
