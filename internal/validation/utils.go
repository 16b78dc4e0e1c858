package validation

import (
	"github.com/deppfellow/roundtrip/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types. They read the request
// themselves instead of going through echo's default binder, because c.Bind
// cannot tell a missing form field from an empty one, and then validate the
// result.
type Validatable interface {
	Bind(c echo.Context) error
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer. Bind failures and validation failures both come
// back as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := payload.Bind(c); err != nil {
		return errs.NewBadRequestError(err.Error(), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(err.Error(), true, nil, nil)
	}

	return nil
}
