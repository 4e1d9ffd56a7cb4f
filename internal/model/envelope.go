package model

// Envelope is the body of every API response.
//
//	success: {"status": true, "data": ...}
//	failure: {"status": false, "message": "..."}
//
// Data is omitted when nil (delete answers with {"status": true}).
type Envelope struct {
	Status  bool   `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{Status: true, Data: data}
}

// Failure builds a failed envelope with message.
func Failure(message string) Envelope {
	return Envelope{Status: false, Message: message}
}
