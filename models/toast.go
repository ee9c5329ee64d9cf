package models

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a transient user-facing status message. It is never persisted.
type Toast struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}
