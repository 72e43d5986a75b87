package rag

import (
	"github.com/samsontands/RAG/internal/config"
	pkghttp "github.com/samsontands/RAG/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "docchat/1.0"

// newHTTPConnector builds the JSON client for the retrieval backend from the RAG_* settings
func newHTTPConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkghttp.Connector {
	return pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{
			Logger:  logger,
			BaseURL: cfg.Url,
		},
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(cfg.Token),
		pkghttp.WithUserAgent(userAgent),
	)
}
