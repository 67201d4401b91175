package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	gh "github.com/cli/go-gh/v2"
	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
)

// restDoer is the slice of api.RESTClient the package uses. Narrowed to an
// interface so tests can inject a fake transport.
type restDoer interface {
	DoWithContext(ctx context.Context, method string, path string, body io.Reader, response interface{}) error
}

// graphqlDoer is the slice of api.GraphQLClient the package uses.
type graphqlDoer interface {
	DoWithContext(ctx context.Context, query string, variables map[string]interface{}, response interface{}) error
}

// execFunc runs a gh CLI invocation, returning stdout and stderr.
type execFunc func(args ...string) (bytes.Buffer, bytes.Buffer, error)

// sessionCache memoizes the most recent successful comment fetch. It is
// one PR deep: fetching a different PR overwrites it.
type sessionCache struct {
	prNumber int
	comments []*ReviewComment
}

// Client is the gateway to GitHub. REST and GraphQL calls go through
// go-gh (sharing gh's stored authentication); the PR-status lookups shell
// out to the gh binary itself.
type Client struct {
	rest    restDoer
	gql     graphqlDoer
	exec    execFunc
	repo    string
	timeout time.Duration
	debug   bool

	mu    sync.Mutex
	cache *sessionCache
}

// DefaultTimeout bounds every outbound call. A hung request should stall
// one action, not the whole session.
const DefaultTimeout = 30 * time.Second

// NewClient creates a Client. The underlying API clients are built
// lazily on first use so that constructing a Client never touches gh
// configuration.
func NewClient() *Client {
	return &Client{
		exec:    gh.Exec,
		timeout: DefaultTimeout,
	}
}

// SetRepo overrides repository detection with an explicit "owner/name".
func (c *Client) SetRepo(repo string) {
	c.repo = repo
}

// SetDebug enables debug output on stderr.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// GetRepo returns the repository the client operates on, detecting it
// from the current directory's git remotes when not set explicitly.
func (c *Client) GetRepo() (string, error) {
	if c.repo != "" {
		return c.repo, nil
	}
	repo, err := repository.Current()
	if err != nil {
		return "", fmt.Errorf("could not determine current repository: %w", err)
	}
	c.repo = fmt.Sprintf("%s/%s", repo.Owner, repo.Name)
	return c.repo, nil
}

func (c *Client) ensureClients() error {
	if c.rest != nil && c.gql != nil {
		return nil
	}
	opts := api.ClientOptions{Timeout: c.timeout}
	if c.rest == nil {
		rest, err := api.NewRESTClient(opts)
		if err != nil {
			return fmt.Errorf("creating REST client: %w", err)
		}
		c.rest = rest
	}
	if c.gql == nil {
		gql, err := api.NewGraphQLClient(opts)
		if err != nil {
			return fmt.Errorf("creating GraphQL client: %w", err)
		}
		c.gql = gql
	}
	return nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
