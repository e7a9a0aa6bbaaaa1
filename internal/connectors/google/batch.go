package google

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
)

// MaxBatchSize is the provider's limit on sub-requests per batch.
const MaxBatchSize = 100

// BatchRequest is one GET sub-request of a batch.
type BatchRequest struct {
	// Key identifies the sub-request in the response map.
	Key string
	// Path is the request path and query, e.g. "/drive/v3/files/abc?fields=id".
	Path string
}

// BatchResponse is one sub-response of a batch.
type BatchResponse struct {
	StatusCode int
	Body       []byte
}

// Batch sends GET sub-requests to the batch endpoint of api ("drive/v3")
// as multipart/mixed requests of at most MaxBatchSize parts. Each outer
// request passes the throttle once. Sub-responses are keyed by
// BatchRequest.Key; a sub-response missing from the reply is absent from
// the map. Only a failure of an outer request is returned as an error.
func (c *Client) Batch(ctx context.Context, op, api string, reqs []BatchRequest) (map[string]BatchResponse, error) {
	out := make(map[string]BatchResponse, len(reqs))
	for start := 0; start < len(reqs); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(reqs))
		chunk := reqs[start:end]

		parts, err := Call(ctx, c, op, func(ctx context.Context) (map[string]BatchResponse, error) {
			return c.sendBatch(ctx, api, chunk)
		})
		if err != nil {
			return nil, err
		}
		for k, v := range parts {
			out[k] = v
		}
	}
	return out, nil
}

func (c *Client) sendBatch(ctx context.Context, api string, reqs []BatchRequest) (map[string]BatchResponse, error) {
	body, contentType, ids, err := encodeBatch(reqs)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(pathBatch+api), body)
	if err != nil {
		return nil, fmt.Errorf("create batch request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, err
	}
	return decodeBatch(resp, ids)
}

// encodeBatch builds the multipart body. The returned map resolves each
// generated Content-ID back to its request key.
func encodeBatch(reqs []BatchRequest) (io.Reader, string, map[string]string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary("batch_" + strings.ReplaceAll(uuid.NewString(), "-", "")); err != nil {
		return nil, "", nil, fmt.Errorf("set batch boundary: %w", err)
	}

	ids := make(map[string]string, len(reqs))
	for _, r := range reqs {
		contentID := uuid.NewString()
		ids[contentID] = r.Key

		header := textproto.MIMEHeader{}
		header.Set("Content-Type", "application/http")
		header.Set("Content-ID", "<"+contentID+">")
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", nil, fmt.Errorf("create batch part: %w", err)
		}
		if _, err := fmt.Fprintf(part, "GET %s HTTP/1.1\r\n\r\n", r.Path); err != nil {
			return nil, "", nil, fmt.Errorf("write batch part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", nil, fmt.Errorf("close batch body: %w", err)
	}
	return &buf, "multipart/mixed; boundary=" + w.Boundary(), ids, nil
}

// decodeBatch splits a multipart/mixed reply into sub-responses.
func decodeBatch(resp *http.Response, ids map[string]string) (map[string]BatchResponse, error) {
	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("batch reply is not multipart: %q", resp.Header.Get("Content-Type"))
	}

	out := make(map[string]BatchResponse, len(ids))
	reader := multipart.NewReader(resp.Body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read batch part: %w", err)
		}

		key, ok := ids[responseContentID(part.Header.Get("Content-ID"))]
		if !ok {
			continue
		}

		sub, err := http.ReadResponse(bufio.NewReader(part), nil)
		if err != nil {
			return nil, fmt.Errorf("parse batch sub-response: %w", err)
		}
		data, err := io.ReadAll(sub.Body)
		sub.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read batch sub-response: %w", err)
		}
		out[key] = BatchResponse{StatusCode: sub.StatusCode, Body: data}
	}
	return out, nil
}

// responseContentID strips the brackets and "response-" prefix the
// provider adds to echoed Content-IDs.
func responseContentID(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "<")
	v = strings.TrimSuffix(v, ">")
	return strings.TrimPrefix(v, "response-")
}
