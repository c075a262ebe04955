// This file was automatically generated by genny.
// Any changes will be lost if this file is regenerated.
// see https://github.com/cheekybits/genny

package tlexperiment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// calls process for each item, keeping at most `concurrency` calls in flight.
// The first error cancels the shared context, which stops submission and cuts
// the remaining workers short.
func concurrentlyExperimentRunSlice(
	ctx context.Context,
	concurrency int,
	items []*experimentRun,
	process func(context.Context, *experimentRun) error,
) error {
	itemsCh := make(chan *experimentRun, concurrency)

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
