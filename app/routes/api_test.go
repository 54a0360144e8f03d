package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/controllers"
	"github.com/spectraretail/spectra-pos/app/graph"
	"github.com/spectraretail/spectra-pos/pkg/router"
	"github.com/spectraretail/spectra-pos/pkg/ws"
)

// testHandler mounts the route table with empty controllers. Requests that
// stop at middleware or body validation never touch a service.
func testHandler(t *testing.T) http.Handler {
	t.Helper()

	schema, err := graph.NewSchema(nil, nil, nil)
	require.NoError(t, err)

	r := router.New()
	RegisterAPI(r, Controllers{
		Auth:      controllers.NewAuthController(nil),
		Catalog:   controllers.NewCatalogController(nil),
		Customers: controllers.NewCustomerController(nil, nil),
		Checkout:  controllers.NewCheckoutController(nil, nil),
		Reports:   controllers.NewReportController(nil, nil, nil),
	}, schema, ws.NewHub())
	return r.Handler()
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestForgotReachableWithoutAuth(t *testing.T) {
	h := testHandler(t)

	// A staff member who lost their password has no token. The route must
	// fail on the missing body fields, never on authentication.
	rec := postJSON(h, "/api/forgot", `{}`)
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginReachableWithoutAuth(t *testing.T) {
	h := testHandler(t)

	rec := postJSON(h, "/api/login", `{}`)
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	h := testHandler(t)

	for _, path := range []string{"/api/logout", "/api/checkout", "/api/redeem", "/api/register"} {
		rec := postJSON(h, path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
