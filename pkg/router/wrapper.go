package router

import (
	"encoding/json"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := req.Context()
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
		ctx = xcontext.WithRequest(ctx, req)
		ctx = xcontext.WithResultHolder(ctx)

		func() {
			for _, middleware := range r.befores {
				// A failing middleware may return a nil context; keep the
				// current one so the error still reaches the envelope.
				next, err := middleware(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = next
			}

			request, err := parseRequest[Request](method, req)
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot parse the request"))
				return
			}

			resp, err := handler(ctx, request)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)
		}()

		writeResponse(ctx, w)

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}

func parseRequest[Request any](method string, req *http.Request) (*Request, error) {
	request := new(Request)
	switch method {
	case http.MethodGet:
		values := map[string]string{}
		for key, value := range req.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           request,
		})
		if err != nil {
			return nil, err
		}

		if err := decoder.Decode(values); err != nil {
			return nil, err
		}

	default:
		if req.Body != nil {
			if err := json.NewDecoder(req.Body).Decode(request); err != nil {
				return nil, err
			}
		}
	}

	return request, nil
}
