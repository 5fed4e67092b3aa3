// Package errors converts platform HTTP responses into common errors.
package errors

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// ExtractAPIErrorDescriptionFunc defines a function which can extract an error message from a API response.
type ExtractAPIErrorDescriptionFunc func(ctx context.Context, resp *http.Response) (message string, err error)

// FormatAPIErrorToGo formats an API error into a Go error.
// errorContext corresponds to the description of what led to the error e.g. `Failed adding a user`. This is to add further details about the error.
// resp corresponds to the HTTP response from a certain endpoint. Note: the body of such response is not closed by this function.
// A response with a non-error status code and no client error results in no error.
// clientErr corresponds to the error which may be returned by the HTTP client when calling the endpoint.
func FormatAPIErrorToGo(ctx context.Context, errorContext string, resp *http.Response, clientErr error, errorExtract ExtractAPIErrorDescriptionFunc) (err error) {
	statusCode := 0
	errorMessage := strings.Builder{}
	var respErr error
	if resp != nil {
		statusCode = resp.StatusCode
		respErr = MapErrorToHTTPResponseCode(statusCode)
		if errorExtract != nil && respErr != nil {
			errorDetails, subErr := errorExtract(ctx, resp)
			if commonerrors.Ignore(subErr, commonerrors.ErrMarshalling) != nil {
				err = commonerrors.Join(commonerrors.New(respErr, errorContext), subErr)
				return
			}
			_, _ = errorMessage.WriteString(strings.TrimSpace(errorDetails))
		}
	}
	if respErr == nil {
		if clientErr == nil {
			return
		}
		switch converted := commonerrors.ConvertContextError(clientErr); {
		case commonerrors.Any(converted, commonerrors.ErrTimeout):
			respErr = commonerrors.ErrTimeout
		case commonerrors.Any(converted, commonerrors.ErrCancelled):
			respErr = commonerrors.ErrCancelled
		default:
			respErr = commonerrors.ErrUnavailable
		}
	}
	extra := ""
	if clientErr != nil {
		extra = clientErr.Error()
	}
	errMsgBuilder := strings.Builder{}
	if errorContext != "" {
		errMsgBuilder.WriteString(errorContext)
	}
	if statusCode != 0 {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString(" ")
		}
		errMsgBuilder.WriteString(fmt.Sprintf("(%d)", statusCode))
	}
	errorDetails := errorMessage.String()
	if errorDetails != "" {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString(": ")
		}
		errMsgBuilder.WriteString(errorDetails)
	}
	if extra != "" {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString("; ")
		}
		errMsgBuilder.WriteString(extra)
	}

	err = commonerrors.New(respErr, errMsgBuilder.String())
	return
}

// MapErrorToHTTPResponseCode maps a response status code to a common error.
func MapErrorToHTTPResponseCode(statusCode int) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}
	switch statusCode {
	case http.StatusBadRequest:
		return commonerrors.ErrInvalid
	case http.StatusUnauthorized:
		return commonerrors.ErrUnauthorised
	case http.StatusPaymentRequired:
		return commonerrors.ErrUnknown
	case http.StatusForbidden:
		return commonerrors.ErrForbidden
	case http.StatusNotFound:
		return commonerrors.ErrNotFound
	case http.StatusMethodNotAllowed:
		return commonerrors.ErrNotFound
	case http.StatusNotAcceptable:
		return commonerrors.ErrUnsupported
	case http.StatusProxyAuthRequired:
		return commonerrors.ErrUnauthorised
	case http.StatusRequestTimeout:
		return commonerrors.ErrTimeout
	case http.StatusConflict:
		return commonerrors.ErrConflict
	case http.StatusGone:
		return commonerrors.ErrNotFound
	case http.StatusLengthRequired:
		return commonerrors.ErrInvalid
	case http.StatusPreconditionFailed:
		return commonerrors.ErrCondition
	case http.StatusRequestEntityTooLarge:
		return commonerrors.ErrTooLarge
	case http.StatusRequestURITooLong:
		return commonerrors.ErrTooLarge
	case http.StatusUnsupportedMediaType:
		return commonerrors.ErrUnsupported
	case http.StatusRequestedRangeNotSatisfiable:
		return commonerrors.ErrInvalid
	case http.StatusExpectationFailed:
		return commonerrors.ErrUnsupported
	case http.StatusTeapot:
		return commonerrors.ErrUnknown
	case http.StatusMisdirectedRequest:
		return commonerrors.ErrUnsupported
	case http.StatusUnprocessableEntity:
		return commonerrors.ErrMarshalling
	case http.StatusLocked:
		return commonerrors.ErrLocked
	case http.StatusFailedDependency:
		return commonerrors.ErrFailed
	case http.StatusTooEarly:
		return commonerrors.ErrUnexpected
	case http.StatusUpgradeRequired:
		return commonerrors.ErrUnsupported
	case http.StatusPreconditionRequired:
		return commonerrors.ErrCondition
	case http.StatusTooManyRequests:
		return commonerrors.ErrUnavailable
	case http.StatusRequestHeaderFieldsTooLarge:
		return commonerrors.ErrTooLarge
	case http.StatusUnavailableForLegalReasons:
		return commonerrors.ErrUnavailable

	case http.StatusInternalServerError:
		return commonerrors.ErrUnexpected
	case http.StatusNotImplemented:
		return commonerrors.ErrNotImplemented
	case http.StatusBadGateway:
		return commonerrors.ErrUnavailable
	case http.StatusServiceUnavailable:
		return commonerrors.ErrUnavailable
	case http.StatusGatewayTimeout:
		return commonerrors.ErrTimeout
	case http.StatusHTTPVersionNotSupported:
		return commonerrors.ErrUnsupported
	case http.StatusVariantAlsoNegotiates:
		return commonerrors.ErrUnexpected
	case http.StatusInsufficientStorage:
		return commonerrors.ErrUnexpected
	case http.StatusLoopDetected:
		return commonerrors.ErrUnexpected
	case http.StatusNotExtended:
		return commonerrors.ErrUnexpected
	case http.StatusNetworkAuthenticationRequired:
		return commonerrors.ErrUnauthorised
	default:
		return commonerrors.ErrUnexpected
	}
}

// MapErrorToStatusCode maps a common error to the status code a server should respond with.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case commonerrors.Any(err, commonerrors.ErrInvalid, commonerrors.ErrUndefined):
		return http.StatusBadRequest
	case commonerrors.Any(err, commonerrors.ErrMarshalling):
		return http.StatusUnprocessableEntity
	case commonerrors.Any(err, commonerrors.ErrUnauthorised):
		return http.StatusUnauthorized
	case commonerrors.Any(err, commonerrors.ErrForbidden):
		return http.StatusForbidden
	case commonerrors.Any(err, commonerrors.ErrNotFound):
		return http.StatusNotFound
	case commonerrors.Any(err, commonerrors.ErrConflict, commonerrors.ErrExpired):
		return http.StatusConflict
	case commonerrors.Any(err, commonerrors.ErrCondition):
		return http.StatusPreconditionFailed
	case commonerrors.Any(err, commonerrors.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case commonerrors.Any(err, commonerrors.ErrLocked):
		return http.StatusLocked
	case commonerrors.Any(err, commonerrors.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	case commonerrors.Any(err, commonerrors.ErrNotImplemented):
		return http.StatusNotImplemented
	case commonerrors.Any(err, commonerrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case commonerrors.Any(err, commonerrors.ErrUnavailable, commonerrors.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
