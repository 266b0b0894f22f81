package thescore_client

import (
	"github.com/mcdev12/livescores/go/clients"
)

type TheScoreClient struct {
	*clients.BaseClient
}

// NewTheScoreClient creates a client for the sports-data API. An empty baseURL
// selects the public endpoint.
func NewTheScoreClient(baseURL string) *TheScoreClient {
	if baseURL == "" {
		baseURL = BaseURL
	}
	client := &TheScoreClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, JsonContentType)

	return client
}
