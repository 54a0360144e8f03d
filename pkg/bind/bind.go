// Package bind decodes a JSON request body into a struct and runs its
// validation rules, writing the error response itself on failure.
package bind

import (
	"encoding/json"
	"net/http"

	"github.com/spectraretail/spectra-pos/pkg/response"
	"github.com/spectraretail/spectra-pos/pkg/validate"
)

// JSON decodes r's body into dst and validates it. It returns false after
// writing a 400 or 422 response, so handlers can bail out with a bare return.
func JSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}

	if errs := validate.Struct(dst); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return false
	}

	return true
}
