package serverutils

// Response is the uniform JSON envelope for every endpoint.
type Response[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// Pagination metadata returned alongside list payloads.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type PaginatedResponse[T any] struct {
	Success    bool       `json:"success"`
	Data       T          `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func SuccessResponse[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func PagedResponse[T any](data T, p Pagination) PaginatedResponse[T] {
	return PaginatedResponse[T]{Success: true, Data: data, Pagination: p}
}

func ErrorResponse(message string, details ...FieldError) Response[any] {
	return Response[any]{Success: false, Error: message, Details: details}
}

// NewPagination derives page metadata; totalPages is ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
