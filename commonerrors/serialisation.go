package commonerrors

import (
	"errors"
	"strings"
)

const (
	TypeReasonErrorSeparator = ':'
	MultipleErrorSeparator   = '\n'
)

type marshallingError struct {
	Reason    string
	ErrorType error
}

func (e *marshallingError) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *marshallingError) String() string {
	err := e.ConvertToError()
	if err == nil {
		return ""
	}
	return err.Error()
}

func (e *marshallingError) UnmarshalText(text []byte) error {
	er := processErrorStrLine(string(text))
	if er == nil {
		return ErrMarshalling
	}
	e.ErrorType = er.ErrorType
	e.Reason = er.Reason
	return nil
}

func (e *marshallingError) ConvertToError() error {
	if e == nil {
		return nil
	}
	return New(e.ErrorType, e.Reason)
}

func processErrorStrLine(err string) (mErr *marshallingError) {
	err = strings.TrimSpace(err)
	if err == "" {
		return nil
	}
	mErr = &marshallingError{}
	elems := strings.Split(err, string(TypeReasonErrorSeparator))
	found, commonErr := deserialiseCommonError(elems[0])
	if found {
		mErr.ErrorType = commonErr
	} else {
		mErr.ErrorType = errors.New(strings.TrimSpace(elems[0]))
	}
	var reasonElems []string
	for i := 1; i < len(elems); i++ {
		reasonElems = append(reasonElems, strings.TrimSpace(elems[i]))
	}
	mErr.Reason = strings.Join(reasonElems, string(TypeReasonErrorSeparator)+" ")
	return
}

// SerialiseError marshals an error following a certain convention: `error type: reason`.
// Joined errors are serialised one per line.
func SerialiseError(err error) ([]byte, error) {
	if IsEmpty(err) {
		return nil, nil
	}
	var lines []string
	if x, ok := err.(interface{ Unwrap() []error }); ok {
		for _, sub := range x.Unwrap() {
			if !IsEmpty(sub) {
				lines = append(lines, strings.TrimSpace(sub.Error()))
			}
		}
	} else {
		lines = strings.Split(strings.TrimSpace(err.Error()), string(MultipleErrorSeparator))
	}
	return []byte(strings.Join(lines, string(MultipleErrorSeparator))), nil
}

// DeserialiseError unmarshals text into an error. It tries to determine the error type so that the resulting error
// can be checked against the sentinel errors of this package.
func DeserialiseError(text []byte) (deserialisedError, err error) {
	if len(strings.TrimSpace(string(text))) == 0 {
		return
	}
	var errs []error
	for _, line := range strings.Split(string(text), string(MultipleErrorSeparator)) {
		mErr := processErrorStrLine(line)
		if mErr == nil {
			continue
		}
		errs = append(errs, mErr.ConvertToError())
	}
	if len(errs) == 0 {
		err = ErrMarshalling
		return
	}
	deserialisedError = Join(errs...)
	return
}
