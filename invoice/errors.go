package invoice

import (
	"fmt"

	"github.com/zeebo/errs"
)

// Error is the class of invoice errors outside of parsing.
var Error = errs.Class("invoice")

// InvalidInvoiceError is returned when an invoice cannot be parsed.
type InvalidInvoiceError struct {
	Message string
	Cause   error
}

func (e *InvalidInvoiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *InvalidInvoiceError) Unwrap() error {
	return e.Cause
}

func invalid(cause error, format string, args ...interface{}) *InvalidInvoiceError {
	return &InvalidInvoiceError{
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
