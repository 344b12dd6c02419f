package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anonto42/book-hearts/backend/internal/services"
	"github.com/anonto42/book-hearts/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

// bindRequest binds the JSON body into req and validates it. A value of the
// wrong JSON type fails validation like any other invalid field; only a body
// that is not JSON at all is a bad request.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return services.Validation(validators.TypeErrors(req, typeErr.Field))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(req); err != nil {
		var fields validators.FieldErrors
		if errors.As(err, &fields) {
			return services.Validation(fields)
		}
		return err
	}
	return nil
}
