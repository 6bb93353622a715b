package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questhive/backend/config"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/logger"
	"github.com/questhive/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Value string `json:"value"`
}

type echoResponse struct {
	Value string `json:"value"`
}

func newTestRouter() *Router {
	return New(nil, config.Configs{}, logger.NewLogger(logger.SILENCE))
}

func serve(r *Router, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(method, target, reader))
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	envelope := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func Test_Router_HandlerResponse(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Value: req.Value}, nil
	})

	w := serve(r, http.MethodPost, "/echo", `{"value":"hello"}`)
	envelope := decodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["code"])
	require.Equal(t, "hello", envelope["data"].(map[string]any)["value"])
}

func Test_Router_MiddlewareError(t *testing.T) {
	r := newTestRouter()

	// Middleware in this codebase returns a nil context alongside its error;
	// the failure must still come back as the JSON envelope, never a panic.
	r.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})

	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		t.Fatal("handler must not run after a failing middleware")
		return nil, nil
	})

	w := serve(r, http.MethodPost, "/echo", `{"value":"hello"}`)
	envelope := decodeEnvelope(t, w)
	require.Equal(t, float64(errorx.Unauthenticated), envelope["code"])
	require.Equal(t, "You need to authenticate before", envelope["error"])
}

func Test_Router_MiddlewareChainsContext(t *testing.T) {
	r := newTestRouter()
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user-1"), nil
	})

	POST(r, "/whoami", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Value: xcontext.RequestUserID(ctx)}, nil
	})

	w := serve(r, http.MethodPost, "/whoami", "")
	envelope := decodeEnvelope(t, w)
	require.Equal(t, "user-1", envelope["data"].(map[string]any)["value"])
}

func Test_Router_BranchIsolatesMiddleware(t *testing.T) {
	r := newTestRouter()
	POST(r, "/open", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Value: "open"}, nil
	})

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.PermissionDenied, "Only admin can call this API")
	})
	POST(branch, "/closed", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Value: "closed"}, nil
	})

	envelope := decodeEnvelope(t, serve(r, http.MethodPost, "/open", ""))
	require.Equal(t, float64(0), envelope["code"])

	envelope = decodeEnvelope(t, serve(r, http.MethodPost, "/closed", ""))
	require.Equal(t, float64(errorx.PermissionDenied), envelope["code"])
}

func Test_Router_UnknownPathIs404(t *testing.T) {
	r := newTestRouter()
	GET(r, "/health", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Value: "ok"}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
