package wom

import (
	"errors"
	"net/http"

	"github.com/sh0bas/osrs-advisor/internal/model"
)

// User-facing messages for classified stats-lookup failures.
const (
	MsgNotFound     = "Player not found. Check the spelling or try updating them on WiseOldMan."
	MsgInvalidInput = "Invalid username format. Usernames are 1-12 characters."
	MsgUnavailable  = "Stats service is unavailable. Please try again later."
)

// ClassifyStatus maps an HTTP status code to an error category. It is total:
// anything that is not 404 or 400 is treated as unavailable.
func ClassifyStatus(code int) model.ErrorCategory {
	switch code {
	case http.StatusNotFound:
		return model.CategoryNotFound
	case http.StatusBadRequest:
		return model.CategoryInvalidInput
	default:
		return model.CategoryUnavailable
	}
}

// Classify turns a transport-level failure from the stats service into a
// classified lookup error. Timeouts and connection failures carry no status
// code and classify as unavailable.
func Classify(err error) *model.LookupError {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch ClassifyStatus(statusErr.StatusCode) {
		case model.CategoryNotFound:
			return &model.LookupError{Category: model.CategoryNotFound, Message: MsgNotFound, Err: err}
		case model.CategoryInvalidInput:
			return &model.LookupError{Category: model.CategoryInvalidInput, Message: MsgInvalidInput, Err: err}
		}
	}
	return &model.LookupError{Category: model.CategoryUnavailable, Message: MsgUnavailable, Err: err}
}
