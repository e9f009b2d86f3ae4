package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prasetyowira/kerjaku/domain/job"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "anon-key", 5*time.Second)
	return client, server
}

func TestDo_SetsAuthHeaders(t *testing.T) {
	var gotAPIKey, gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	defer server.Close()

	var dest []jobDTO
	err := client.From("jobs").Select(context.Background(), &dest)

	assert.NoError(t, err)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
}

func TestDo_UsesTokenSourceWhenSet(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	defer server.Close()

	auth := NewAuth(client)
	auth.current = &session{AccessToken: "session-token", UserID: "u1"}
	client.WithTokenSource(auth)

	var dest []jobDTO
	err := client.From("jobs").Select(context.Background(), &dest)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}

func TestDo_NonOKStatusBecomesStatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"overloaded"}`))
	})
	defer server.Close()

	var dest []jobDTO
	err := client.From("jobs").Select(context.Background(), &dest)

	se, ok := err.(*StatusError)
	assert.True(t, ok)
	assert.Equal(t, 503, se.StatusCode())
	assert.Contains(t, se.Body(), "overloaded")
	assert.Contains(t, se.URL(), "/rest/v1/jobs")
}

func TestQuery_BuildsFilterParams(t *testing.T) {
	var gotQuery map[string][]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/rest/v1/jobs", r.URL.Path)
		_, _ = w.Write([]byte("[]"))
	})
	defer server.Close()

	min, max := 10.0, 50.5
	filter := job.Filter{State: "Selangor", District: "Petaling", Search: "cook", SalaryMin: &min, SalaryMax: &max}

	_, err := NewJobs(client).List(context.Background(), filter, 20, 10)

	assert.NoError(t, err)
	assert.Equal(t, []string{"eq.Selangor"}, gotQuery["state"])
	assert.Equal(t, []string{"eq.Petaling"}, gotQuery["district"])
	assert.Equal(t, []string{"(title.ilike.*cook*,description.ilike.*cook*)"}, gotQuery["or"])
	assert.Empty(t, gotQuery["title"])
	assert.Equal(t, []string{"gte.10", "lte.50.5"}, gotQuery["salary"])
	assert.Equal(t, []string{"created_at.desc"}, gotQuery["order"])
	assert.Equal(t, []string{"20"}, gotQuery["offset"])
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
}

func TestJobs_ListSearchesTitleAndDescription(t *testing.T) {
	var gotQuery map[string][]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte("[]"))
	})
	defer server.Close()

	_, err := NewJobs(client).List(context.Background(), job.Filter{Search: "cook"}, 0, 10)

	assert.NoError(t, err)
	assert.Equal(t, []string{"(title.ilike.*cook*,description.ilike.*cook*)"}, gotQuery["or"])
}

func TestJobs_ByIDEmptyRowSetIsNil(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	defer server.Close()

	row, err := NewJobs(client).ByID(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, row)
}

func TestJobs_CreateCopiesReturnedFields(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Cook", body["title"])

		_, _ = w.Write([]byte(`[{"id":"server-id","title":"Cook","employer_id":"e1","created_at":"2025-05-01T10:00:00Z"}]`))
	})
	defer server.Close()

	j := &job.Job{Title: "Cook", EmployerID: "e1"}
	err := NewJobs(client).Create(context.Background(), j)

	assert.NoError(t, err)
	assert.Equal(t, "server-id", j.ID)
	assert.False(t, j.CreatedAt.IsZero())
}

func TestJobs_DeleteFiltersByID(t *testing.T) {
	var gotQuery map[string][]string
	var gotMethod string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	err := NewJobs(client).Delete(context.Background(), "j1")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, []string{"eq.j1"}, gotQuery["id"])
}

func TestRPC_PostsToFunctionPath(t *testing.T) {
	var gotPath string
	var gotArgs map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotArgs)
		_, _ = w.Write([]byte(`{"access_token":"tok","user_id":"u1"}`))
	})
	defer server.Close()

	var sess session
	err := client.RPC(context.Background(), "verify_phone_otp", map[string]string{"phone": "+60", "token": "123456"}, &sess)

	assert.NoError(t, err)
	assert.Equal(t, "/rest/v1/rpc/verify_phone_otp", gotPath)
	assert.Equal(t, "123456", gotArgs["token"])
	assert.Equal(t, "tok", sess.AccessToken)
}

func TestAuth_ConfirmStoresSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","user_id":"u1"}`))
	})
	defer server.Close()

	auth := NewAuth(client)
	done := make(chan error, 1)
	auth.Confirm(context.Background(), "+60123456789", "123456", func(err error) { done <- err })

	assert.NoError(t, <-done)

	userID, err := auth.CurrentUserID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "u1", userID)

	token, err := auth.AccessToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestAuth_NoSession(t *testing.T) {
	auth := NewAuth(nil)

	_, err := auth.CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	token, err := auth.AccessToken(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, token)
}
