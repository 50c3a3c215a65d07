package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	atproto "github.com/mmattbtw/ATProtoKit"
)

var tracer = otel.Tracer("atproto-client")

// Param is one query-string pair. Parameters are transmitted in declared
// order; an omitted optional simply contributes no Param.
type Param struct {
	Name  string
	Value string
}

// clampLimit forces a caller-supplied page size into the endpoint's declared
// range instead of rejecting it. The bounds are part of each endpoint's
// contract and are not sanity-checked here.
func clampLimit(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// encodeParams builds the query string by hand: url.Values would sort keys,
// and parameter order is declared, not alphabetical.
func encodeParams(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func (c *Client) endpointURL(nsid string, params []Param) (string, error) {
	u, err := url.Parse(c.host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = errors.New("host is not an absolute url")
		}
		return "", &atproto.URLConstructionError{Host: c.host, Path: nsid, Err: err}
	}
	u.Path = "/xrpc/" + nsid
	u.RawQuery = encodeParams(params)
	return u.String(), nil
}

// query runs an XRPC query (HTTP GET) and decodes the body into T.
func query[T any](ctx context.Context, c *Client, nsid string, params []Param) (T, error) {
	var zero T

	ctx, span := tracer.Start(ctx, "xrpc.query/"+nsid)
	defer span.End()

	target, err := c.endpointURL(nsid, params)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		err = &atproto.URLConstructionError{Host: c.host, Path: nsid, Err: err}
		span.RecordError(err)
		return zero, err
	}

	return send[T](c, span, nsid, req)
}

// procedure runs an XRPC procedure (HTTP POST with a JSON body) and decodes
// the response into T.
func procedure[T any](ctx context.Context, c *Client, nsid string, body any) (T, error) {
	var zero T

	ctx, span := tracer.Start(ctx, "xrpc.procedure/"+nsid)
	defer span.End()

	target, err := c.endpointURL(nsid, nil)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return zero, errors.Wrap(err, "encode request body")
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, payload)
	if err != nil {
		err = &atproto.URLConstructionError{Host: c.host, Path: nsid, Err: err}
		span.RecordError(err)
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")

	return send[T](c, span, nsid, req)
}

// send issues the request through the transport collaborator and maps the
// outcome onto the error taxonomy. Every path returns an explicit value or
// error; nothing is retried here.
func send[T any](c *Client, span trace.Span, nsid string, req *http.Request) (T, error) {
	var zero T

	if c.session != nil && c.session.AccessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessJwt)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		terr := &atproto.TransportError{Err: err}
		span.RecordError(terr)
		return zero, terr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &atproto.TransportError{Err: err}
		span.RecordError(terr)
		return zero, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &atproto.APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = "UnknownError"
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		span.RecordError(apiErr)
		c.logger.Debug("xrpc call failed",
			slog.String("nsid", nsid),
			slog.Int("status", resp.StatusCode),
			slog.String("module", "client"),
		)
		return zero, apiErr
	}

	var out T
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			err = errors.Wrapf(err, "decode %s response", nsid)
			span.RecordError(err)
			return zero, err
		}
	}
	return out, nil
}

// emptyResult is the decode target for procedures whose response body carries
// nothing the caller needs.
type emptyResult struct{}
