package models

// UserListResponse is the paginated body of GET /users.
//
// Items carries the user views for the requested page; Total is the overall
// row count so the client can render paging controls without a second
// request.
type UserListResponse struct {
	Items      []User `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int64  `json:"totalPages"`
}

// ErrorResponse is the uniform JSON error body for every non-2xx response.
// Detail is a human-readable description; for validation failures it names
// the offending fields.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
