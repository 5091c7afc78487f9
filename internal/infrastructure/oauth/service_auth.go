package oauth

import (
	"context"
	"net/http"
	"time"

	"rexlog-service/pkg/logger"

	"golang.org/x/oauth2/clientcredentials"
)

// ServiceAuth issues OAuth2 client-credentials tokens for calls to the
// notification service
type ServiceAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewServiceAuth creates a new service-to-service auth handler
func NewServiceAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *ServiceAuth {
	return &ServiceAuth{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		logger: logger,
	}
}

// HTTPClient returns a client that attaches a bearer token to every request.
// When no credentials are configured it returns a plain client instead, for
// environments where the notification service sits on a trusted network.
func (a *ServiceAuth) HTTPClient(ctx context.Context) *http.Client {
	if a.config.ClientID == "" || a.config.ClientSecret == "" {
		a.logger.Warn("No notifier credentials configured, using unauthenticated client")
		return &http.Client{Timeout: 30 * time.Second}
	}

	client := a.config.Client(ctx)
	client.Timeout = 30 * time.Second
	return client
}
