package dto

import "github.com/jewelry/backend/internal/domain/shared"

// Response is the envelope of every API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Field     string             `json:"field,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Details   map[string]any     `json:"details,omitempty"`
	Fields    []ValidationDetail `json:"fields,omitempty"`
}

// ValidationDetail names one field that failed request validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response listing the failing fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Fields = details
	return resp
}

// ListQuery holds the paging and sorting query parameters shared by list endpoints
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	OrderBy  string `form:"order_by" binding:"max=50"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into a repository filter with defaults applied
func (q ListQuery) ToFilter(defaultOrderBy string) shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if f.OrderBy == "" {
		f.OrderBy = defaultOrderBy
	}
	return f.Normalize()
}

// DeleteRequest carries the cascade switch of hard deletes
type DeleteRequest struct {
	Cascade bool `form:"cascade"`
}
