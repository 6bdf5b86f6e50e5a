package handler

// Response is the envelope every endpoint returns:
// { "success": bool, "data": ..., "error": "..." }.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Fail(message string) Response {
	return Response{Success: false, Error: message}
}
