package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

const pathstorePrefix = "outlines"

// Pathstore keeps results as nodes of a pathstore HTTP KV service, one
// node per record under outlines/<id>.
type Pathstore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Store = (*Pathstore)(nil)

func NewPathstore(baseURL, apiKey string) *Pathstore {
	return &Pathstore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// nodeRequest is the body for PUT /kv/{key}.
type nodeRequest struct {
	Value  Record `json:"value"`
	Source string `json:"source,omitempty"`
}

// nodeResponse is a node from GET /kv/{key} or a prefix scan.
type nodeResponse struct {
	Key   string `json:"key_path"`
	Value Record `json:"value"`
}

func (p *Pathstore) key(id string) string {
	return pathstorePrefix + "/" + url.PathEscape(id)
}

func (p *Pathstore) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	return req, nil
}

func statusError(op, key string, resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s %s: status %d: %s", op, key, resp.StatusCode, string(respBody))
}

// Put stores or replaces the node for rec.ID.
func (p *Pathstore) Put(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(nodeRequest{Value: rec, Source: "docoutline"})
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	key := p.key(rec.ID)
	req, err := p.newRequest(ctx, http.MethodPut, p.baseURL+"/kv/"+key, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("put node", key, resp)
	}
	return nil
}

func (p *Pathstore) Get(ctx context.Context, id string) (Record, error) {
	key := p.key(id)
	req, err := p.newRequest(ctx, http.MethodGet, p.baseURL+"/kv/"+key, nil)
	if err != nil {
		return Record{}, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("get node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Record{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Record{}, statusError("get node", key, resp)
	}

	var node nodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return Record{}, fmt.Errorf("decode node: %w", err)
	}
	return node.Value, nil
}

// List does a prefix scan under outlines/ and orders the records newest
// first.
func (p *Pathstore) List(ctx context.Context, limit int) ([]Record, error) {
	u := p.baseURL + "/kv/" + pathstorePrefix + "/*"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	req, err := p.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list children", pathstorePrefix, resp)
	}

	var result struct {
		Nodes []nodeResponse `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}

	out := make([]Record, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		out = append(out, n.Value)
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *Pathstore) Delete(ctx context.Context, id string) error {
	key := p.key(id)
	req, err := p.newRequest(ctx, http.MethodDelete, p.baseURL+"/kv/"+key, nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	}
	return statusError("delete node", key, resp)
}

// Close releases idle connections.
func (p *Pathstore) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
