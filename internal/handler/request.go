package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/SwSsinha/NEXUS/internal/apperror"
)

// validate is shared across all handlers; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// decodeAndValidate decodes the JSON request body into dst and runs its
// `validate` struct tags. Every failure surfaces as a ValidationError so
// malformed and merely-invalid input get the same 400 treatment.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.ValidationFailed(fe.Field(),
				fmt.Sprintf("field %q failed validation on the %q rule", fe.Field(), fe.Tag()))
		}
		return apperror.ValidationFailed("body", "invalid request body")
	}

	return nil
}
