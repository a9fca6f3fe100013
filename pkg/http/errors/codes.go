package errors

// Canonical message texts for the fixed error envelope. Clients match on
// these strings, so they are part of the external contract.
const (
	MsgBadRequest    = "Bad Request"
	MsgNotFound      = "resource not found"
	MsgUnprocessable = "unprocessable"
	MsgInternalError = "internal server error"
)
