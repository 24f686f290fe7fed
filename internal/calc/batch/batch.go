package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"Airduct/internal/calc/autodesign"
	apperr "Airduct/internal/errors"
)

// Item is one tagged duct segment of a schedule.
type Item struct {
	Tag   string            `json:"tag"`
	Input autodesign.Input `json:"input"`
}

type ItemResult struct {
	Tag    string             `json:"tag"`
	Input  autodesign.Input   `json:"input"`
	Result *autodesign.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (r ItemResult) OK() bool {
	return r.Error == ""
}

type Input struct {
	Items []Item `json:"items"`
}

type Result struct {
	Count   int          `json:"count"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// Calculate sizes every item with at most workers in flight. Results keep
// the input order. An item that fails validation is reported on its own
// row; only cancellation of ctx fails the whole batch.
func Calculate(ctx context.Context, in Input, workers int) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, apperr.Input("no items")
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]ItemResult, len(in.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range in.Items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := ItemResult{Tag: item.Tag, Input: item.Input}
			res, err := autodesign.Duct(item.Input)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Result = &res
			}
			out[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Count: len(out), Results: out}
	for _, r := range out {
		if !r.OK() {
			res.Failed++
		}
	}
	return res, nil
}
