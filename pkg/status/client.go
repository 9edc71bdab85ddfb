package status

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v37/github"
	"golang.org/x/oauth2"
)

const apiVersion = "2022-11-28"

// CommitStatus is one context's reported state within the combined
// status payload. Extra fields of the API response are dropped.
type CommitStatus struct {
	Context string
	State   string
}

// CombinedStatusFetcher fetches the aggregate status document of a
// commit.
type CombinedStatusFetcher interface {
	FetchCombinedStatus(ctx context.Context, owner string, repo string, sha string) ([]CommitStatus, error)
}

type GithubClient struct {
	client *github.Client
}

func NewGithubClient(token string) *GithubClient {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Transport = &transport{underlyingTransport: httpClient.Transport}

	return &GithubClient{
		client: github.NewClient(httpClient),
	}
}

// SetBaseURL points the client at a non-default API endpoint. Tests use
// it to talk to a local server.
func (c *GithubClient) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL = rawURL + "/"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	c.client.BaseURL = parsed
	return nil
}

// FetchCombinedStatus returns the statuses of the combined status
// document of a commit. A payload without a statuses field yields an
// empty slice. Faults are not retried, they surface as one of the
// error kinds of this package.
func (c *GithubClient) FetchCombinedStatus(
	ctx context.Context,
	owner string,
	repo string,
	sha string,
) ([]CommitStatus, error) {
	combined, _, err := c.client.Repositories.GetCombinedStatus(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, classify(err)
	}

	statuses := make([]CommitStatus, 0, len(combined.Statuses))
	for _, s := range combined.Statuses {
		statuses = append(statuses, CommitStatus{
			Context: s.GetContext(),
			State:   s.GetState(),
		})
	}

	return statuses, nil
}

func classify(err error) error {
	var responseErr *github.ErrorResponse
	if errors.As(err, &responseErr) {
		return &HTTPStatusError{
			StatusCode: responseErr.Response.StatusCode,
			Err:        err,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{Err: err}
	}

	return &TransportError{Err: err}
}

type transport struct {
	underlyingTransport http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	return t.underlyingTransport.RoundTrip(req)
}
