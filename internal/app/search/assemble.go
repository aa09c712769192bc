package search

import "context"

// assemble hydrates the final, paginated offering ids with display metadata
// and attaches each offering's matched-on labels. No scoring happens here.
func (e *Engine) assemble(ctx context.Context, year string, rows []*Row, browse bool) ([]*Result, error) {
	if len(rows) == 0 {
		return []*Result{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.OfferingID
	}

	offerings, err := e.offerings.Hydrate(ctx, year, ids)
	if err != nil {
		return nil, unavailable("hydrating results", err)
	}

	results := make([]*Result, 0, len(rows))
	for _, row := range rows {
		offering, ok := offerings[row.OfferingID]
		if !ok {
			continue
		}

		var labels []string
		if browse {
			labels = []string{MatchedOnAll}
		} else {
			labels = make([]string, len(row.Score.MatchedOn))
			for i, kind := range row.Score.MatchedOn {
				labels[i] = string(kind)
			}
		}

		results = append(results, &Result{
			Offering:  offering,
			MatchedOn: labels,
			Relevance: row.Score.Relevance,
		})
	}
	return results, nil
}
