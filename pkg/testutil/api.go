package testutil

import (
	"context"

	"github.com/questhive/backend/pkg/api"
)

// MockAPIGenerator hands out the same mock client for every call and records
// the domain and path it was asked for.
type MockAPIGenerator struct {
	Client *MockAPIClient

	Domain string
	Path   string
}

func NewMockAPIGenerator(client *MockAPIClient) *MockAPIGenerator {
	return &MockAPIGenerator{Client: client}
}

func (g *MockAPIGenerator) New(domain, path string, args ...any) api.Client {
	g.Domain = domain
	g.Path = path
	return g.Client
}

// MockAPIClient records the request being built and delegates the call to
// GETFunc or POSTFunc. A nil func means the test expects no call of that
// method to happen.
type MockAPIClient struct {
	Headers  map[string]string
	Queries  api.Parameter
	SentBody api.Body

	GETFunc  func(ctx context.Context) (*api.Response, error)
	POSTFunc func(ctx context.Context) (*api.Response, error)
}

func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{Headers: map[string]string{}}
}

func (c *MockAPIClient) Header(name, value string) api.Client {
	c.Headers[name] = value
	return c
}

func (c *MockAPIClient) Query(query api.Parameter) api.Client {
	c.Queries = query
	return c
}

func (c *MockAPIClient) Body(body api.Body) api.Client {
	c.SentBody = body
	return c
}

func (c *MockAPIClient) GET(ctx context.Context) (*api.Response, error) {
	if c.GETFunc == nil {
		panic("unexpected GET call")
	}

	return c.GETFunc(ctx)
}

func (c *MockAPIClient) POST(ctx context.Context) (*api.Response, error) {
	if c.POSTFunc == nil {
		panic("unexpected POST call")
	}

	return c.POSTFunc(ctx)
}
