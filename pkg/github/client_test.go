package github

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

// fakeREST records calls and answers them through a handler.
type restCall struct {
	Method string
	Path   string
	Body   string
}

type fakeREST struct {
	calls   []restCall
	handler func(call restCall, response interface{}) error
}

func (f *fakeREST) DoWithContext(ctx context.Context, method, path string, body io.Reader, response interface{}) error {
	call := restCall{Method: method, Path: path}
	if body != nil {
		data, _ := io.ReadAll(body)
		call.Body = string(data)
	}
	f.calls = append(f.calls, call)
	if f.handler == nil {
		return nil
	}
	return f.handler(call, response)
}

type gqlCall struct {
	Query string
	Vars  map[string]interface{}
}

type fakeGQL struct {
	calls   []gqlCall
	handler func(call gqlCall, response interface{}) error
}

func (f *fakeGQL) DoWithContext(ctx context.Context, query string, variables map[string]interface{}, response interface{}) error {
	call := gqlCall{Query: query, Vars: variables}
	f.calls = append(f.calls, call)
	if f.handler == nil {
		return nil
	}
	return f.handler(call, response)
}

// respond marshals v into the response target the same way the real
// clients decode API payloads.
func respond(t *testing.T, response interface{}, v interface{}) error {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fake response: %v", err)
	}
	return json.Unmarshal(data, response)
}

func newTestClient(rest *fakeREST, gql *fakeGQL, exec execFunc) *Client {
	return &Client{
		rest:    rest,
		gql:     gql,
		exec:    exec,
		repo:    "octo/demo",
		timeout: time.Second,
	}
}

// threadsResponse builds a fake reviewThreads GraphQL payload.
func threadsResponse(nodes ...map[string]interface{}) map[string]interface{} {
	if nodes == nil {
		nodes = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"repository": map[string]interface{}{
			"pullRequest": map[string]interface{}{
				"reviewThreads": map[string]interface{}{
					"pageInfo": map[string]interface{}{"hasNextPage": false},
					"nodes":    nodes,
				},
			},
		},
	}
}

func threadNode(id string, resolved bool, comments ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":         id,
		"isResolved": resolved,
		"comments":   map[string]interface{}{"nodes": comments},
	}
}

func threadCommentNode(databaseID int64, login, body string) map[string]interface{} {
	return map[string]interface{}{
		"databaseId": databaseID,
		"body":       body,
		"author":     map[string]interface{}{"login": login},
	}
}

func gqlForThreads(t *testing.T, nodes ...map[string]interface{}) *fakeGQL {
	return &fakeGQL{handler: func(call gqlCall, response interface{}) error {
		if !strings.Contains(call.Query, "reviewThreads") {
			t.Fatalf("unexpected GraphQL query: %s", call.Query)
		}
		return respond(t, response, threadsResponse(nodes...))
	}}
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
