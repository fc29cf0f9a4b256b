package dto

// Envelope 는 모든 API 응답의 공통 형식이다.
// 성공 시 {"success": true, "data": ...}, 실패 시 {"success": false, "error": "..."} 형태를 따른다.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// ErrorResponseDTO는 swagger 문서화를 위한 에러 응답 형식이다.
type ErrorResponseDTO struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"invalid_token"`
}
