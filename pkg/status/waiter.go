package status

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

const successState = "success"

// Outcome is the handled result of a polling run. Fetch faults are
// returned as errors instead, there is no retry for those.
type Outcome struct {
	Success bool
	// LastState holds the state the required context reported on the
	// last poll. Observed is false when the context was absent from
	// that payload.
	LastState string
	Observed  bool
}

// Waiter polls the combined status of one commit until the required
// context reports success or the wait budget runs out.
type Waiter struct {
	Fetcher CombinedStatusFetcher
	Clock   clockwork.Clock
	Out     io.Writer
	ErrOut  io.Writer

	Owner           string
	Repo            string
	SHA             string
	RequiredContext string
	WaitBudget      time.Duration
	PollInterval    time.Duration
}

// Run polls until a terminal outcome. The deadline check follows the
// fetch, so at least one fetch happens even with a zero wait budget.
func (w *Waiter) Run(ctx context.Context) (Outcome, error) {
	deadline := w.Clock.Now().Add(w.WaitBudget)
	outcome := Outcome{}

	for {
		statuses, err := w.Fetcher.FetchCombinedStatus(ctx, w.Owner, w.Repo, w.SHA)
		if err != nil {
			return outcome, errors.Wrap(err, "cannot fetch commit status")
		}

		outcome.LastState, outcome.Observed = findContext(statuses, w.RequiredContext)

		if outcome.Observed && outcome.LastState == successState {
			outcome.Success = true
			fmt.Fprintf(w.Out, "%s is success\n", w.RequiredContext)
			return outcome, nil
		}

		if !w.Clock.Now().Before(deadline) {
			if outcome.Observed {
				fmt.Fprintf(w.ErrOut, "Local status %s is '%s', expected 'success'\n", w.RequiredContext, outcome.LastState)
			} else {
				fmt.Fprintf(w.ErrOut, "Missing required local status: %s\n", w.RequiredContext)
			}
			return outcome, nil
		}

		current := "missing"
		if outcome.Observed {
			current = outcome.LastState
		}
		fmt.Fprintf(w.Out, "Waiting for %s=success (current: %s), retrying in %ds...\n",
			w.RequiredContext, current, int(w.PollInterval.Seconds()))

		select {
		case <-ctx.Done():
			return outcome, ctx.Err()
		case <-w.Clock.After(w.PollInterval):
		}
	}
}

// findContext returns the state of the first entry matching the wanted
// context, in payload order. Later duplicates are ignored.
func findContext(statuses []CommitStatus, wanted string) (string, bool) {
	for _, s := range statuses {
		if s.Context == wanted {
			return s.State, true
		}
	}
	return "", false
}
