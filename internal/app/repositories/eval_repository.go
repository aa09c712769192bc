package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/search"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// EvalRepository implements search.EvalStore over Postgres and serves the
// evaluation-metric reference data.
type EvalRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEvalRepository creates a new eval repository
func NewEvalRepository(db *pgxpool.Pool) *EvalRepository {
	return &EvalRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAllMetrics retrieves every evaluation metric
func (r *EvalRepository) GetAllMetrics(ctx context.Context) ([]*models.EvalMetric, error) {
	query := `
		SELECT id, slug, direction, range_min, range_max
		FROM eval_metrics
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying eval metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*models.EvalMetric
	for rows.Next() {
		var m models.EvalMetric
		if err := rows.Scan(&m.ID, &m.Slug, &m.Direction, &m.RangeMin, &m.RangeMax); err != nil {
			return nil, fmt.Errorf("error scanning eval metric: %w", err)
		}
		metrics = append(metrics, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return metrics, nil
}

// SectionStats left-joins the smart averages of every requested metric onto
// each principal, non-cancelled, term-matching section of the given
// offerings. A section with no statistic for a metric keeps nil for it.
func (r *EvalRepository) SectionStats(ctx context.Context, f search.Filter, offeringIDs []int64, metrics map[models.EvalSlug]int64) ([]search.SectionStats, error) {
	if len(offeringIDs) == 0 || len(metrics) == 0 {
		return nil, nil
	}

	idToSlug := make(map[int64]models.EvalSlug, len(metrics))
	metricIDs := make([]int64, 0, len(metrics))
	for slug, id := range metrics {
		idToSlug[id] = slug
		metricIDs = append(metricIDs, id)
	}
	sort.Slice(metricIDs, func(i, j int) bool { return metricIDs[i] < metricIDs[j] })

	b := r.sb.Select("sec.offering_id", "sec.id", "sa.metric_id", "sa.value").
		From("sections sec").
		LeftJoin("smart_averages sa ON sa.section_id = sec.id AND sa.metric_id = ANY(?)", metricIDs).
		Where(squirrel.Expr("sec.offering_id = ANY(?)", offeringIDs)).
		Where(squirrel.Eq{"sec.is_principal": true, "sec.is_cancelled": false})
	if len(f.Quarters) > 0 {
		b = b.Where(squirrel.Expr("sec.term = ANY(?)", termStrings(f.Quarters)))
	}
	b = b.OrderBy("sec.offering_id", "sec.id")

	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building section stats SQL")
		return nil, fmt.Errorf("failed to build section stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying section stats: %w", err)
	}
	defer rows.Close()

	var (
		stats   []search.SectionStats
		current *search.SectionStats
	)
	for rows.Next() {
		var (
			offeringID int64
			sectionID  int64
			metricID   *int64
			value      *float64
		)
		if err := rows.Scan(&offeringID, &sectionID, &metricID, &value); err != nil {
			return nil, fmt.Errorf("error scanning section stats row: %w", err)
		}

		if current == nil || current.SectionID != sectionID {
			stats = append(stats, search.SectionStats{
				OfferingID: offeringID,
				SectionID:  sectionID,
				Values:     make(map[models.EvalSlug]*float64, len(metrics)),
			})
			current = &stats[len(stats)-1]
		}
		if metricID != nil && value != nil {
			if slug, ok := idToSlug[*metricID]; ok {
				v := *value
				current.Values[slug] = &v
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
