package models

import (
	"time"
)

// ResponseModel is the base envelope for every API response.
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data,omitempty"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// NewOKResponse returns a successful response wrapping data.
func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(200, data, "OK")
}

// NewListResponse wraps a list payload in the standard envelope.
func NewListResponse(list interface{}) ResponseModel {
	data := map[string]interface{}{
		"limitExceeded": false,
		"list":          list,
	}
	return NewOKResponse(data)
}

// NewEntryResponse wraps a single-entry payload in the standard envelope.
func NewEntryResponse(entry interface{}) ResponseModel {
	data := map[string]interface{}{
		"entry": entry,
	}
	return NewOKResponse(data)
}

// NewResponse creates a standard response envelope.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: time.Now().UnixMilli(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}
