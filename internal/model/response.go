package model

import "encoding/xml"

// Response types carried in ApiResponse.Type.
const (
	ResponseTypeError   = "error"
	ResponseTypeWarning = "warning"
	ResponseTypeInfo    = "info"
	ResponseTypeOK      = "ok"
	ResponseTypeTooBusy = "too busy"
	ResponseTypeUnknown = "unknown"
)

// ApiResponse acknowledges operations that return no record.
type ApiResponse struct {
	XMLName xml.Name `json:"-" xml:"apiResponse"`
	Code    int32    `json:"code" xml:"code"`
	Type    string   `json:"type" xml:"type"`
	Message string   `json:"message" xml:"message"`
}

// NewApiResponse builds an acknowledgement, deriving Type from code.
func NewApiResponse(code int32, message string) ApiResponse {
	responseType := ResponseTypeUnknown
	switch code {
	case 1:
		responseType = ResponseTypeError
	case 2:
		responseType = ResponseTypeWarning
	case 3:
		responseType = ResponseTypeInfo
	case 4, 200:
		responseType = ResponseTypeOK
	case 5:
		responseType = ResponseTypeTooBusy
	}

	return ApiResponse{Code: code, Type: responseType, Message: message}
}
