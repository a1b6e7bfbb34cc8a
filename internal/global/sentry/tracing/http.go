package tracing

import (
	"net/url"

	"community-portal/config"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
)

// SetupRestyTracing 追踪管理员 webhook 等外部调用，需开启 Sentry.Tracing.TraceHTTPCalls
func SetupRestyTracing(client *resty.Client) {
	if !config.Get().Sentry.Tracing.TraceHTTPCalls {
		return
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		target := endpoint(req.URL)
		span := startChild(req.Context(), "http.client", req.Method+" "+target)
		if span == nil {
			return nil
		}
		span.SetData("http.request.method", req.Method)
		span.SetData("server.address", target)
		req.SetHeader("sentry-trace", span.ToSentryTrace())
		if baggage := span.ToBaggage(); baggage != "" {
			req.SetHeader("baggage", baggage)
		}
		req.SetContext(span.Context())
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		span := sentry.SpanFromContext(resp.Request.Context())
		if span == nil || span.Op != "http.client" {
			return nil
		}
		span.SetData("http.response.status_code", resp.StatusCode())
		span.SetData("http.attempt", resp.Request.Attempt)
		if resp.StatusCode() >= 400 {
			span.Status = sentry.HTTPtoSpanStatus(resp.StatusCode())
			span.Finish()
			return nil
		}
		finish(span, resp.Time(), 0, nil)
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		if req == nil {
			return
		}
		span := sentry.SpanFromContext(req.Context())
		if span == nil || span.Op != "http.client" {
			return
		}
		finish(span, 0, 0, err)
	})
}

// endpoint 只保留 scheme 和 host，webhook 地址的路径里通常带密钥
func endpoint(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Scheme + "://" + u.Host
}
