package middleware

import (
	"io"
	"net/http"
)

// DrainRequestBody fully reads and closes the request body after the handler
// runs, so keep-alive connections can be reused for the next request.
func DrainRequestBody() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
