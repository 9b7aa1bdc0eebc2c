package services

import "errors"

// ErrorKind distinguishes domain failures machine-readably; every Error
// also carries a human-readable message.
type ErrorKind string

const (
	KindTickerRequired       ErrorKind = "ticker_required"
	KindInvalidQuantity      ErrorKind = "invalid_quantity"
	KindInvalidPrice         ErrorKind = "invalid_price"
	KindManualPriceRequired  ErrorKind = "manual_price_required"
	KindNameUnavailable      ErrorKind = "name_unavailable"
	KindPriceUnavailable     ErrorKind = "price_unavailable"
	KindMetadataUnavailable  ErrorKind = "metadata_unavailable"
	KindPositionNotFound     ErrorKind = "position_not_found"
	KindInsufficientQuantity ErrorKind = "insufficient_quantity"
	KindUserExists           ErrorKind = "user_exists"
	KindUserNotFound         ErrorKind = "user_not_found"
	KindWrongPassword        ErrorKind = "wrong_password"
	KindInvalidInput         ErrorKind = "invalid_input"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind of a domain error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}
