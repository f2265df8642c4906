package httpsource

import "time"

const (
	sourceName         = "http"
	defaultHTTPTimeout = 10 * time.Second
	maxDocumentBytes   = 4 << 20
	maxErrorBodyBytes  = 512
)
