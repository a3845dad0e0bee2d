package httpkit

import (
	"net/http"
	"time"

	"caseline/internal/platform/config"
	"caseline/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins []string
	Slow    time.Duration
	Observe middleware.Observer
}

// StackFromConfig reads CORS_ORIGINS and SLOW_REQUEST from the API prefix
func StackFromConfig(c config.Conf, observe middleware.Observer) StackOptions {
	return StackOptions{
		Origins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
		Slow:    c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Observe: observe,
	}
}

// CommonStack is the middleware every versioned API route runs through
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return append(middleware.Defaults(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow, Observe: o.Observe}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
	)
}
