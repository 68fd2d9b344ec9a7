package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/dzikrimr/portfolio-web/pkg/errors"
)

// StatusCode maps an error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeSourceUnavailable), errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusServiceUnavailable
	case stderrors.Is(err, context.Canceled):
		// client went away
		return 499
	}
	return http.StatusInternalServerError
}

// catalogError reports a failed catalog load as the server's own fault. A
// missing or malformed catalog must not look like a bad request or a
// missing page to the visitor.
func catalogError(err error) error {
	if errors.IsNotFound(err) || errors.IsInvalid(err) {
		return errors.Wrap(errors.ErrCodeSourceUnavailable, err, "load catalog")
	}
	return err
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = http.StatusText(status)
		if status == 499 {
			msg = "client closed request"
		}
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		var body errorBody
		body.Error.Code = code
		body.Error.Message = msg
		writeJSON(w, status, body)
		return
	}
	http.Error(w, msg, status)
}
