package response

// Body is the JSON envelope for the recommendation API surface.
type Body struct {
	Success bool           `json:"success"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
	Error   *ErrorBody     `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(data any, meta map[string]any) Body {
	return Body{
		Success: true,
		Data:    data,
		Meta:    meta,
	}
}

func Error(code, message string, details any) Body {
	return Body{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
