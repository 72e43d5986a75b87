package http

import "net/http"

// headerTransport sets fixed headers on every outbound request
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	for key, values := range t.headers {
		reqCopy.Header[key] = values
	}

	return t.transport.RoundTrip(reqCopy)
}

func withStaticHeader(key, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		if value == "" {
			return rt
		}
		headers := http.Header{}
		headers.Set(key, value)
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}

// WithAuthToken adds a bearer token to every request; an empty token is a no-op.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return withStaticHeader("Authorization", "Bearer "+token)
}

// WithUserAgent names the client to the backend
func WithUserAgent(userAgent string) HttpOpts {
	return withStaticHeader("User-Agent", userAgent)
}
