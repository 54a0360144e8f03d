package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		CookieName: "spectra_session",
		TTL:        time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

func TestMiddlewareInjectsSession(t *testing.T) {
	var sess *Session
	handler := Middleware(testOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess = FromCtx(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID())
}

func TestSessionSetGet(t *testing.T) {
	var gotID uint
	var gotRole string
	var okID, okRole bool

	handler := Middleware(testOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		sess.Set("staff_id", uint(7))
		sess.Set("role", "manager")

		gotID, okID = sess.GetUint("staff_id")
		gotRole, okRole = sess.GetString("role")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, okID)
	assert.Equal(t, uint(7), gotID)
	assert.True(t, okRole)
	assert.Equal(t, "manager", gotRole)
}

func TestSaveWritesSealedCookie(t *testing.T) {
	handler := Middleware(testOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		sess.Set("staff_id", uint(1))
		require.NoError(t, sess.Save(w))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "spectra_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestGetUintToleratesFloat(t *testing.T) {
	// Values read back from Redis arrive as float64 after the JSON
	// roundtrip.
	s := &Session{data: map[string]interface{}{"staff_id": float64(42)}}

	id, ok := s.GetUint("staff_id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestInvalidateClearsData(t *testing.T) {
	s := &Session{data: map[string]interface{}{"staff_id": uint(3)}}

	s.Invalidate()
	_, ok := s.GetUint("staff_id")
	assert.False(t, ok)
}
