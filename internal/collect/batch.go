// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// CollectBatch collects every identifier in order. Invalid identifiers are
// always skipped and recorded. A failed collection is recorded and skipped
// too, unless the collector is fail-fast, in which case the batch stops and
// returns the error with an empty result. Cancelling ctx also stops the batch.
func (c *Collector) CollectBatch(ctx context.Context, identifiers []string) (types.BatchResult, error) {
	var result types.BatchResult
	for i, raw := range identifiers {
		if err := ctx.Err(); err != nil {
			return types.BatchResult{}, err
		}

		id, err := ParseIdentifier(raw, c.excluded)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping identifier", "index", i, "identifier", raw, "err", err)
			result.Skipped = append(result.Skipped, types.SkipRecord{
				Identifier: raw,
				Kind:       types.SkipInvalid,
				Reason:     err.Error(),
			})
			continue
		}

		person, err := c.collect(ctx, id)
		if err != nil {
			if c.failFast || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return types.BatchResult{}, fmt.Errorf("collecting %s: %w", raw, err)
			}
			c.logger.ErrorContext(ctx, "collection failed", "index", i, "identifier", raw, "err", err)
			result.Skipped = append(result.Skipped, types.SkipRecord{
				Identifier: raw,
				Kind:       types.SkipFailed,
				Reason:     err.Error(),
			})
			continue
		}

		c.logger.InfoContext(ctx, "collected profile",
			"scholar_id", person.ScholarID, "name", person.Name, "publications", len(person.Publications))
		result.People = append(result.People, person)
	}

	c.logger.InfoContext(ctx, "batch complete",
		"people", len(result.People), "skipped", len(result.Skipped), "total", result.Total())
	return result, nil
}
