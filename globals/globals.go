package globals

// Context keys
type ContextKey string

const RequestIDKey ContextKey = "requestId"
