package github

import (
	"context"
	"log/slog"
	"os"
	"sync"

	gh "github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// TokenEnvVar holds the personal access token used to authenticate the
// shared client. It is read lazily at first use, not at process start.
const TokenEnvVar = "GITHUB_PERSONAL_ACCESS_TOKEN"

// State tracks the lifecycle of the shared client.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

// Client holds the authenticated go-github session. One live instance exists
// per process; once Ready it is read-only and safe for concurrent use.
type Client struct {
	rest     *gh.Client
	testMode bool
}

var (
	mu       sync.Mutex
	instance *Client
	state    State
)

// GetInstance returns the shared client, initializing it on first call.
// Initialization fails if TokenEnvVar is absent from the environment.
// Safe for concurrent use.
func GetInstance() (*Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if state == StateReady {
		return instance, nil
	}

	state = StateInitializing
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		state = StateUninitialized
		return nil, NewError(KindAuthentication, TokenEnvVar+" environment variable not set")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	instance = &Client{rest: gh.NewClient(httpClient)}
	state = StateReady
	slog.Debug("GitHub client initialized")
	return instance, nil
}

// SetTestInstance installs a caller-supplied go-github client and marks the
// holder Ready in test mode. Tests pair this with Reset.
func SetTestInstance(rest *gh.Client) {
	mu.Lock()
	defer mu.Unlock()
	instance = &Client{rest: rest, testMode: true}
	state = StateReady
}

// Reset clears the shared client so the next GetInstance re-initializes.
// Intended for test isolation between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	state = StateUninitialized
}

// CurrentState reports the lifecycle state without initializing.
func CurrentState() State {
	mu.Lock()
	defer mu.Unlock()
	return state
}

// REST exposes the underlying go-github client.
func (c *Client) REST() *gh.Client {
	return c.rest
}

// TestMode reports whether the client was installed via SetTestInstance.
func (c *Client) TestMode() bool {
	return c.testMode
}
