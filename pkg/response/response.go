package response

type Body struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(code, message string, data any) Body {
	return Body{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data any) Body {
	return Body{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    data,
	}
}
