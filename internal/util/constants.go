package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// gin.Context 中的键
const (
	UserContextKey  = "user"
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)
