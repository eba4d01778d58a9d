// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/scholar-scraper/internal/extract"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// DefaultPageSize is the number of works requested per listing page. It is
// the largest page Scholar serves.
const DefaultPageSize = 100

// PageURL appends the listing offset and page size to a profile URL.
func PageURL(profileURL string, offset, pageSize int) string {
	sep := "&"
	switch {
	case !strings.Contains(profileURL, "?"):
		sep = "?"
	case strings.HasSuffix(profileURL, "?"), strings.HasSuffix(profileURL, "&"):
		sep = ""
	}
	return fmt.Sprintf("%s%scstart=%d&pagesize=%d", profileURL, sep, offset, pageSize)
}

// IsLastPage reports whether a listing page holding n works ends the
// listing. Scholar gives no total count, so any page that is not full is
// taken to be the last.
func IsLastPage(n, pageSize int) bool {
	return n != pageSize
}

// ListAllWorks fetches listing pages of profileURL at offsets 0, pageSize,
// 2*pageSize, ... until IsLastPage, and returns every stub in page order.
// On any error the stubs gathered so far are discarded.
func (c *Collector) ListAllWorks(ctx context.Context, profileURL string, pageSize int) ([]types.WorkStub, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	var all []types.WorkStub
	for offset := 0; ; offset += pageSize {
		pageURL := PageURL(profileURL, offset, pageSize)
		doc, err := c.fetchDocument(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing page at offset %d: %w", offset, err)
		}
		works, err := extract.ListWorks(doc.Selection)
		if err != nil {
			return nil, fmt.Errorf("listing page at offset %d: %w", offset, err)
		}
		c.logger.DebugContext(ctx, "listing page", "offset", offset, "works", len(works))

		all = append(all, works...)
		if IsLastPage(len(works), pageSize) {
			return all, nil
		}
	}
}
