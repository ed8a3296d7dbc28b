package model

// Envelope is the JSON body shape shared by every API response.
//
//	{"success": true, "data": [...], "count": 2}
//	{"success": true, "message": "User updated successfully"}
//	{"success": false, "error": "User not found"}
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a single record.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// List wraps a collection together with its size. A nil slice is
// reported as [] rather than null.
func List[T any](data []T) Envelope {
	if data == nil {
		data = []T{}
	}
	count := len(data)
	return Envelope{Success: true, Data: data, Count: &count}
}

// Message is a success envelope carrying only a human-readable message.
func Message(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Failure is an error envelope.
func Failure(err string) Envelope {
	return Envelope{Success: false, Error: err}
}
