// Genny template for fanning a slice out to a bounded worker pool.
package syncutilgen

import (
	"context"

	"github.com/cheekybits/genny/generic"
	"golang.org/x/sync/errgroup"
)

type ItemType generic.Type

// calls process for each item, keeping at most `concurrency` calls in flight.
// The first error cancels the shared context, which stops submission and cuts
// the remaining workers short.
func concurrentlyItemTypeSlice(
	ctx context.Context,
	concurrency int,
	items []ItemType,
	process func(context.Context, ItemType) error,
) error {
	itemsCh := make(chan ItemType, concurrency)

	errGroup, taskCtx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		defer close(itemsCh) // lets the workers exit when submission is done

		for _, item := range items {
			select {
			case itemsCh <- item:
			case <-taskCtx.Done():
				return taskCtx.Err()
			}
		}

		return nil
	})

	for i := 0; i < concurrency; i++ {
		errGroup.Go(func() error {
			for item := range itemsCh {
				if err := process(taskCtx, item); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return errGroup.Wait()
}
