// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every catalog API response.

Successful bodies are wrapped as {"data": ...}, list pages add a "meta" block,
and failures are rendered from an [apperr.AppError] as
{"error": ..., "code": ..., "details": [...]}.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/kmdb/internal/platform/apperr"
	"github.com/taibuivan/kmdb/internal/platform/ctxutil"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

const contentTypeJSON = "application/json; charset=utf-8"

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload as is. Encoding failures are not reported since the
// status line has already been sent.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func Envelope(writer http.ResponseWriter, status int, data any) {
	JSON(writer, status, SuccessEnvelope{Data: data})
}

func OK(writer http.ResponseWriter, data any) { Envelope(writer, http.StatusOK, data) }

func Created(writer http.ResponseWriter, data any) { Envelope(writer, http.StatusCreated, data) }

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(writer http.ResponseWriter) { writer.WriteHeader(http.StatusNoContent) }

// Error renders err. Errors outside the apperr vocabulary become an opaque
// INTERNAL_ERROR; server side failures are logged with their cause.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctx := request.Context()
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "request_failed",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
