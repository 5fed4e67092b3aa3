package throttle

import (
	"context"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// IListCounter counts the items of a list.
type IListCounter interface {
	CountListItems(ctx context.Context, siteURL, list string) (int, error)
}

// WatchedList is a list a step queries.
type WatchedList struct {
	// OnHub states whether the list belongs to the hub site rather than to the project site.
	OnHub bool
	List  string
}

var _ saga.IListThresholdGuard = &ListThresholdGuard{}

// ListThresholdGuard flags steps which query lists holding more items than the platform threshold.
type ListThresholdGuard struct {
	counter   IListCounter
	threshold int
	watched   map[int]WatchedList
}

// NewListThresholdGuard returns a guard checking the lists watched for each step number.
func NewListThresholdGuard(counter IListCounter, threshold int, watched map[int]WatchedList) (*ListThresholdGuard, error) {
	if counter == nil {
		return nil, commonerrors.UndefinedVariable("list counter")
	}
	if threshold <= 0 {
		return nil, commonerrors.Newf(commonerrors.ErrInvalid, "list threshold must be positive (%v)", threshold)
	}
	w := make(map[int]WatchedList, len(watched))
	for step, list := range watched {
		w[step] = list
	}
	return &ListThresholdGuard{counter: counter, threshold: threshold, watched: w}, nil
}

// CheckThreshold returns an error of type commonerrors.ErrTooLarge if the list the step queries reached the threshold.
func (g *ListThresholdGuard) CheckThreshold(ctx context.Context, rc *saga.RunContext, step int) error {
	list, found := g.watched[step]
	if !found {
		return nil
	}
	siteURL := rc.SiteURL
	if list.OnHub {
		siteURL = rc.HubSiteURL
	}
	if siteURL == "" {
		return commonerrors.UndefinedVariable("site URL")
	}
	count, err := g.counter.CountListItems(ctx, siteURL, list.List)
	if err != nil {
		return err
	}
	if count >= g.threshold {
		return commonerrors.Newf(commonerrors.ErrTooLarge, "list %v of %v holds %v items (threshold: %v)", list.List, siteURL, count, g.threshold)
	}
	return nil
}
