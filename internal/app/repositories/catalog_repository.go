package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/search"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// Raw collector scores. The combiner weighs them; these only order matches
// within one strategy.
const (
	exactCodeScore   = 1.0
	partialCodeScore = 0.7
	subjectCodeScore = 0.3
)

// CatalogRepository implements search.CatalogStore over Postgres. Full-text
// relevance comes from ts_rank over the offerings' content tsvector, fuzzy
// subject-name matching from pg_trgm similarity.
type CatalogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// eligibilityWhere builds the predicate list over the eligible_offerings view
// (aliased eo) for the present filter fields only.
func eligibilityWhere(f search.Filter) []squirrel.Sqlizer {
	conds := []squirrel.Sqlizer{squirrel.Eq{"eo.year": f.Year}}
	if len(f.Quarters) > 0 {
		conds = append(conds, squirrel.Expr("eo.terms && ?", termStrings(f.Quarters)))
	}
	if len(f.Ways) > 0 {
		conds = append(conds, squirrel.Expr("eo.ways && ?", f.Ways))
	}
	if f.UnitsMin != nil {
		conds = append(conds, squirrel.Expr("eo.units_max >= ?", *f.UnitsMin))
	}
	if f.UnitsMax != nil {
		conds = append(conds, squirrel.Expr("eo.units_min <= ?", *f.UnitsMax))
	}
	return conds
}

// applyEligibility joins the eligibility view against course_offerings co and
// applies the filter predicates. Pushing eligibility into every signal query
// keeps ineligible offerings out of all strategies.
func applyEligibility(b squirrel.SelectBuilder, f search.Filter) squirrel.SelectBuilder {
	b = b.Join("eligible_offerings eo ON eo.offering_id = co.id AND eo.year = co.year")
	for _, cond := range eligibilityWhere(f) {
		b = b.Where(cond)
	}
	return b
}

func termStrings(terms []models.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = string(t)
	}
	return out
}

// CodeSignals matches offerings by parsed subject+number(+suffix) codes.
// An exact number and suffix match scores 1.0 (NULL suffix normalized to the
// empty string); a number match against a query without suffix scores 0.7.
func (r *CatalogRepository) CodeSignals(ctx context.Context, f search.Filter, codes []search.CourseCode) ([]search.Signal, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	ors := squirrel.Or{}
	for _, c := range codes {
		cond := squirrel.And{
			squirrel.Eq{"s.code": c.Subject},
			squirrel.Eq{"co.code_number": c.Number},
		}
		if c.Suffix != "" {
			cond = append(cond, squirrel.Expr("COALESCE(co.code_suffix, '') = ?", c.Suffix))
		}
		ors = append(ors, cond)
	}

	b := r.sb.Select("co.id", "s.code", "co.code_number", "COALESCE(co.code_suffix, '')").
		From("course_offerings co").
		Join("subjects s ON s.id = co.subject_id").
		Where(ors)
	b = applyEligibility(b, f)

	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building code signal SQL")
		return nil, fmt.Errorf("failed to build code signal query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying code signals: %w", err)
	}
	defer rows.Close()

	var signals []search.Signal
	for rows.Next() {
		var (
			id      int64
			subject string
			number  int
			suffix  string
		)
		if err := rows.Scan(&id, &subject, &number, &suffix); err != nil {
			return nil, fmt.Errorf("error scanning code signal row: %w", err)
		}
		if score := scoreCode(codes, subject, number, suffix); score > 0 {
			signals = append(signals, search.Signal{OfferingID: id, Score: score, Kind: search.SignalCode})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signals, nil
}

// scoreCode scores one matched offering against all parsed codes.
func scoreCode(codes []search.CourseCode, subject string, number int, suffix string) float64 {
	var best float64
	for _, c := range codes {
		if c.Subject != subject || c.Number != number {
			continue
		}
		if c.Suffix == suffix {
			return exactCodeScore
		}
		// The query gave no suffix: a suffixed offering is an ambiguous,
		// partial match. A mismatched explicit suffix is no match at all.
		if c.Suffix == "" && best < partialCodeScore {
			best = partialCodeScore
		}
	}
	return best
}

// SubjectCodeSignals emits a flat, low-precision score for every eligible
// offering under a bare mentioned subject.
func (r *CatalogRepository) SubjectCodeSignals(ctx context.Context, f search.Filter, subjects []string) ([]search.Signal, error) {
	if len(subjects) == 0 {
		return nil, nil
	}

	b := r.sb.Select("co.id").
		From("course_offerings co").
		Join("subjects s ON s.id = co.subject_id").
		Where(squirrel.Expr("s.code = ANY(?)", subjects))
	b = applyEligibility(b, f)

	return r.flatSignals(ctx, b, subjectCodeScore, search.SignalSubjectCode)
}

// ContentSignals scores title+description relevance with ts_rank.
func (r *CatalogRepository) ContentSignals(ctx context.Context, f search.Filter, query string) ([]search.Signal, error) {
	b := r.sb.Select("co.id").
		Column(squirrel.Expr("ts_rank(co.content_tsv, plainto_tsquery('english', ?)) AS score", query)).
		From("course_offerings co").
		Where(squirrel.Expr("co.content_tsv @@ plainto_tsquery('english', ?)", query))
	b = applyEligibility(b, f)

	return r.scoredSignals(ctx, b, search.SignalContent)
}

// SubjectNameSignals scores trigram similarity of the query against each
// subject's descriptive long name.
func (r *CatalogRepository) SubjectNameSignals(ctx context.Context, f search.Filter, query string) ([]search.Signal, error) {
	b := r.sb.Select("co.id").
		Column(squirrel.Expr("similarity(s.name, ?) AS score", query)).
		From("course_offerings co").
		Join("subjects s ON s.id = co.subject_id").
		Where(squirrel.Expr("s.name % ?", query))
	b = applyEligibility(b, f)

	return r.scoredSignals(ctx, b, search.SignalSubjectName)
}

// EligibleOfferingIDs lists every offering satisfying the filter.
func (r *CatalogRepository) EligibleOfferingIDs(ctx context.Context, f search.Filter) ([]int64, error) {
	b := r.sb.Select("eo.offering_id").
		From("eligible_offerings eo").
		OrderBy("eo.offering_id")
	for _, cond := range eligibilityWhere(f) {
		b = b.Where(cond)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building eligible offerings SQL")
		return nil, fmt.Errorf("failed to build eligible offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUndefinedRelationError(err) {
			return nil, fmt.Errorf("eligibility view missing, migrations have not run: %w", err)
		}
		return nil, fmt.Errorf("error querying eligible offerings: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning eligible offering id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// OfferingKeys fetches the sortable identity fields for the given offerings.
func (r *CatalogRepository) OfferingKeys(ctx context.Context, year string, ids []int64) (map[int64]search.OfferingKey, error) {
	if len(ids) == 0 {
		return map[int64]search.OfferingKey{}, nil
	}

	b := r.sb.Select(
		"co.id", "s.code", "co.code_number", "COALESCE(co.code_suffix, '')",
		"co.units_min", "co.units_max",
	).
		From("course_offerings co").
		Join("subjects s ON s.id = co.subject_id").
		Where(squirrel.Expr("co.id = ANY(?)", ids)).
		Where(squirrel.Eq{"co.year": year})

	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building offering keys SQL")
		return nil, fmt.Errorf("failed to build offering keys query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying offering keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[int64]search.OfferingKey, len(ids))
	for rows.Next() {
		var key search.OfferingKey
		if err := rows.Scan(
			&key.OfferingID, &key.Subject, &key.Number, &key.Suffix,
			&key.UnitsMin, &key.UnitsMax,
		); err != nil {
			return nil, fmt.Errorf("error scanning offering key: %w", err)
		}
		keys[key.OfferingID] = key
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// flatSignals executes a one-column id query and emits a flat score per row.
func (r *CatalogRepository) flatSignals(ctx context.Context, b squirrel.SelectBuilder, score float64, kind search.SignalKind) ([]search.Signal, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("kind", string(kind)).Msg("Error building signal SQL")
		return nil, fmt.Errorf("failed to build %s signal query: %w", kind, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s signals: %w", kind, err)
	}
	defer rows.Close()

	var signals []search.Signal
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning %s signal row: %w", kind, err)
		}
		signals = append(signals, search.Signal{OfferingID: id, Score: score, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signals, nil
}

// scoredSignals executes an (id, score) query and emits one signal per row.
func (r *CatalogRepository) scoredSignals(ctx context.Context, b squirrel.SelectBuilder, kind search.SignalKind) ([]search.Signal, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("kind", string(kind)).Msg("Error building signal SQL")
		return nil, fmt.Errorf("failed to build %s signal query: %w", kind, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s signals: %w", kind, err)
	}
	defer rows.Close()

	var signals []search.Signal
	for rows.Next() {
		var (
			id    int64
			score float64
		)
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("error scanning %s signal row: %w", kind, err)
		}
		signals = append(signals, search.Signal{OfferingID: id, Score: score, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return signals, nil
}
