package config

import "github.com/pkg/errors"

// Default admission-control budgets, used whenever a config file omits
// either key. Both must be positive, with the current-batch budget
// typically larger, since the consumer only ever drains the current
// batch.
const (
	DefaultCurrentBatchBufferSize = 2097152
	DefaultOtherBatchesBufferSize = 524288
)

// BufferBudgets reads CURRENT_BATCH_BUFFER_SIZE and
// OTHER_BATCHES_BUFFER_SIZE out of cfg's Execution settings, falling
// back to the package defaults exactly the way physical/distinct.go
// reads garbageCollectionBoundary out of matCtx.Config.Execution. cfg
// may be nil, in which case both defaults are returned.
func BufferBudgets(cfg *Config) (currentBudget, otherBudget int, err error) {
	execution := map[string]interface{}{}
	if cfg != nil && cfg.Execution != nil {
		execution = cfg.Execution
	}

	currentBudget, err = GetInt(execution, "currentBatchBufferSize", WithDefault(DefaultCurrentBatchBufferSize))
	if err != nil {
		return 0, 0, errors.Wrap(err, "couldn't get currentBatchBufferSize configuration")
	}
	otherBudget, err = GetInt(execution, "otherBatchesBufferSize", WithDefault(DefaultOtherBatchesBufferSize))
	if err != nil {
		return 0, 0, errors.Wrap(err, "couldn't get otherBatchesBufferSize configuration")
	}
	return currentBudget, otherBudget, nil
}
