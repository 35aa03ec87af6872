package handler

type ContextKey string

var (
	SubCtxKey       ContextKey = "sub"
	RequestIDCtxKey ContextKey = "requestID"
	DateCtxKey      ContextKey = "date"
)
