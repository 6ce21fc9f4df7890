// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, turning malformed input into validation errors.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kmdb/internal/platform/validate"
	"github.com/taibuivan/kmdb/pkg/pagination"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON reads the request body into target and validates its struct tags.
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return validate.Struct(target)
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// PositiveID parses a named URL parameter as an id greater than zero.
func PositiveID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

// Has reports whether the query string carries the key, even with an empty value.
func Has(request *http.Request, key string) bool {
	return request.URL.Query().Has(key)
}

// Query returns the trimmed query value for key.
func Query(request *http.Request, key string) string {
	return strings.TrimSpace(request.URL.Query().Get(key))
}

// QueryInt parses an integer query value.
func QueryInt(request *http.Request, key string) (int, error) {
	value, err := strconv.Atoi(Query(request, key))
	if err != nil {
		return 0, validate.RequiredError(key, "Must be an integer")
	}
	return value, nil
}

// QueryPositiveInt parses an integer query value greater than zero.
func QueryPositiveInt(request *http.Request, key string) (int, error) {
	value, err := QueryInt(request, key)
	if err != nil || value <= 0 {
		return 0, validate.RequiredError(key, "Must be a positive integer")
	}
	return value, nil
}

// QueryBool parses a boolean query value. An absent key yields fallback.
func QueryBool(request *http.Request, key string, fallback bool) (bool, error) {
	raw := Query(request, key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, validate.RequiredError(key, "Must be true or false")
	}
	return value, nil
}

var errNotInteger = errors.New("not an integer")

func intOr(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errNotInteger
	}
	return value, nil
}

// Page reads 'page' and 'size' with their defaults and enforces
// page >= 0 and size within [pagination.MinSize, pagination.MaxSize].
func Page(request *http.Request) (pagination.Params, error) {
	v := &validate.Validator{}

	page, err := intOr(Query(request, "page"), pagination.DefaultPage)
	v.Custom("page", err != nil, "Must be an integer")

	size, err := intOr(Query(request, "size"), pagination.DefaultSize)
	v.Custom("size", err != nil, "Must be an integer")

	if v.HasErrors() {
		return pagination.Params{}, v.Err()
	}

	v.Min("page", page, 0).
		Range("size", size, pagination.MinSize, pagination.MaxSize)
	if err := v.Err(); err != nil {
		return pagination.Params{}, err
	}

	v.Custom("page", page > pagination.MaxPage(size), fmt.Sprintf("Must not be greater than %d", pagination.MaxPage(size)))
	if err := v.Err(); err != nil {
		return pagination.Params{}, err
	}

	return pagination.Params{Page: page, Size: size}, nil
}
