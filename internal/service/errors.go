package service

// Kind classifies a domain error so the HTTP layer can pick a status code
// without parsing messages.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindBadRequest
	KindUnauthorized
	// KindStoreWriteFailed covers conditional updates that matched or
	// modified nothing. The store reports no change and the request fails;
	// there is no retry.
	KindStoreWriteFailed
)

// Error is a domain error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func badRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func storeWriteFailed(message string) *Error {
	return &Error{Kind: KindStoreWriteFailed, Message: message}
}
