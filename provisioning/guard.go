package provisioning

import (
	"github.com/RMF112018/Project-Controls-sub011/throttle"
	"github.com/RMF112018/Project-Controls-sub011/transaction/saga"
)

// NewListThresholdGuard returns a guard checking the size of the lead list before the lead record is linked, or nil
// if the guard is disabled.
func NewListThresholdGuard(counter throttle.IListCounter, cfg *throttle.Configuration) (saga.IListThresholdGuard, error) {
	if cfg == nil || cfg.ListThreshold <= 0 {
		return nil, nil
	}
	guard, err := throttle.NewListThresholdGuard(counter, cfg.ListThreshold, map[int]throttle.WatchedList{
		StepLinkLeadRecord: {OnHub: true, List: cfg.LeadList},
	})
	if err != nil {
		return nil, err
	}
	return guard, nil
}
