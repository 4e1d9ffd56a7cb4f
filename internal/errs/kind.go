package errs

import "net/http"

// Kind classifies an application failure without tying it to HTTP.
//
// Services decide the Kind; only the table below knows which status code
// a Kind is rendered with.
type Kind string

const (
	KindBadRequest       Kind = "bad_request"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindValidation       Kind = "validation"
	KindTooManyRequests  Kind = "too_many_requests"
	KindUnsupportedMedia Kind = "unsupported_media_type"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindInternal         Kind = "internal"
)

// kindStatus is the dispatch table Kind -> HTTP status.
var kindStatus = map[Kind]int{
	KindBadRequest:       http.StatusBadRequest,
	KindNotFound:         http.StatusNotFound,
	KindConflict:         http.StatusConflict,
	KindValidation:       http.StatusUnprocessableEntity,
	KindTooManyRequests:  http.StatusTooManyRequests,
	KindUnsupportedMedia: http.StatusUnsupportedMediaType,
	KindMethodNotAllowed: http.StatusMethodNotAllowed,
	KindInternal:         http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for kind.
// Unknown kinds are treated as internal errors.
func StatusOf(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// KindOf is the inverse lookup used when an error only carries a status code
// (echo errors). Statuses without a dedicated Kind map to KindInternal for
// 5xx and KindBadRequest for everything else.
func KindOf(status int) Kind {
	for kind, s := range kindStatus {
		if s == status {
			return kind
		}
	}
	if status >= http.StatusInternalServerError {
		return KindInternal
	}
	return KindBadRequest
}
