package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/book-hearts/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorHandler is the echo.HTTPErrorHandler for the API. Rule violations from
// the services become structured responses; echo errors keep their status;
// anything else is logged and reported as a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var serr *services.Error
	if errors.As(err, &serr) {
		var body interface{}
		switch serr.Kind {
		case services.KindValidation:
			body = echo.Map{"message": serr.Message, "errors": serr.Fields}
		case services.KindForbidden:
			// clients switch on the bare reason string
			body = serr.Reason
		default:
			body = echo.Map{"message": serr.Message}
		}
		respond(c, serr.HTTPStatus(), body)
		return
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"uri":    c.Request().RequestURI,
	}).Error("request failed")
	respond(c, http.StatusInternalServerError, echo.Map{"message": http.StatusText(http.StatusInternalServerError)})
}

func respond(c echo.Context, status int, body interface{}) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to write error response")
	}
}
