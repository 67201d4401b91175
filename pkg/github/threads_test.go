package github

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveThreadPreconditionNoNetwork(t *testing.T) {
	gql := &fakeGQL{}
	client := newTestClient(&fakeREST{}, gql, nil)

	comment := &ReviewComment{ID: 1}
	_, err := client.ResolveThread(context.Background(), 5, comment)

	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Empty(t, gql.calls)
}

func TestResolveThreadRunsMutation(t *testing.T) {
	gql := &fakeGQL{handler: func(call gqlCall, response interface{}) error {
		if strings.Contains(call.Query, "reviewThreads") {
			return respond(t, response, threadsResponse(
				threadNode("T1", false, threadCommentNode(1, "alice", "starter")),
			))
		}
		if strings.Contains(call.Query, "resolveReviewThread") {
			assert.Equal(t, "T1", call.Vars["threadId"])
			return nil
		}
		t.Fatalf("unexpected mutation: %s", call.Query)
		return nil
	}}
	client := newTestClient(&fakeREST{}, gql, nil)

	comment := &ReviewComment{ID: 1, ReviewID: int64Ptr(10)}
	msg, err := client.ResolveThread(context.Background(), 5, comment)
	require.NoError(t, err)
	assert.Equal(t, "Marked as resolved", msg)
	assert.True(t, comment.IsResolved())
	assert.Len(t, gql.calls, 2, "one lookup, one mutation")
}

func TestResolveThreadAlreadyResolvedIsNoOp(t *testing.T) {
	gql := gqlForThreads(t, threadNode("T1", true, threadCommentNode(1, "alice", "starter")))
	client := newTestClient(&fakeREST{}, gql, nil)

	comment := &ReviewComment{ID: 1, ReviewID: int64Ptr(10)}
	msg, err := client.ResolveThread(context.Background(), 5, comment)
	require.NoError(t, err)
	assert.Equal(t, "Thread is already resolved", msg)
	assert.Len(t, gql.calls, 1, "no mutation for an already-settled thread")
	assert.True(t, comment.IsResolved())
}

func TestUnresolveThreadClearsLocalState(t *testing.T) {
	gql := &fakeGQL{handler: func(call gqlCall, response interface{}) error {
		if strings.Contains(call.Query, "reviewThreads") {
			return respond(t, response, threadsResponse(
				threadNode("T1", true, threadCommentNode(1, "alice", "starter")),
			))
		}
		require.Contains(t, call.Query, "unresolveReviewThread")
		return nil
	}}
	client := newTestClient(&fakeREST{}, gql, nil)

	resolvedAt := time.Now()
	comment := &ReviewComment{
		ID:             1,
		ReviewID:       int64Ptr(10),
		ResolvedAt:     &resolvedAt,
		ThreadResolved: true,
	}

	msg, err := client.UnresolveThread(context.Background(), 5, comment)
	require.NoError(t, err)
	assert.Equal(t, "Marked as unresolved", msg)
	assert.False(t, comment.IsResolved(), "every resolution signal must clear on unresolve")
}

func TestResolveThreadFindsCommentAsReply(t *testing.T) {
	// A comment that is a reply still identifies its containing thread.
	gql := gqlForThreads(t, threadNode("T1", true,
		threadCommentNode(1, "alice", "starter"),
		threadCommentNode(2, "bob", "reply"),
	))
	client := newTestClient(&fakeREST{}, gql, nil)

	comment := &ReviewComment{ID: 2, ReviewID: int64Ptr(10)}
	msg, err := client.ResolveThread(context.Background(), 5, comment)
	require.NoError(t, err)
	assert.Equal(t, "Thread is already resolved", msg)
}

func TestResolveThreadCommentNotInAnyThread(t *testing.T) {
	gql := gqlForThreads(t, threadNode("T1", false, threadCommentNode(1, "alice", "starter")))
	client := newTestClient(&fakeREST{}, gql, nil)

	comment := &ReviewComment{ID: 42, ReviewID: int64Ptr(10)}
	_, err := client.ResolveThread(context.Background(), 5, comment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42")
}

func TestSplitRepo(t *testing.T) {
	owner, name, err := splitRepo("octo/demo")
	require.NoError(t, err)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "demo", name)

	_, _, err = splitRepo("nodash")
	require.Error(t, err)
}
