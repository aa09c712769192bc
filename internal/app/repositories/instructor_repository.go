package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/search"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// InstructorRepository implements search.InstructorStore over Postgres,
// using pg_trgm similarity for the fuzzy name fields.
type InstructorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Candidates generates the union of instructors matching the query by exact
// account identifier or by fuzzy full/last/first name, with per-field
// similarity scores.
func (r *InstructorRepository) Candidates(ctx context.Context, query string) ([]search.InstructorCandidate, error) {
	account := strings.ToLower(strings.TrimSpace(query))

	sql := `
		SELECT i.id,
		       lower(i.account_id) = $1 AS exact_account,
		       similarity(i.full_name, $2) AS full_sim,
		       similarity(i.last_name, $2) AS last_sim,
		       similarity(i.first_name, $2) AS first_sim
		FROM instructors i
		WHERE lower(i.account_id) = $1
		   OR i.full_name % $2
		   OR i.last_name % $2
		   OR i.first_name % $2
		ORDER BY i.id
	`

	rows, err := r.db.Query(ctx, sql, account, query)
	if err != nil {
		return nil, fmt.Errorf("error querying instructor candidates: %w", err)
	}
	defer rows.Close()

	var candidates []search.InstructorCandidate
	for rows.Next() {
		var c search.InstructorCandidate
		if err := rows.Scan(&c.InstructorID, &c.ExactAccount, &c.FullNameSim, &c.LastNameSim, &c.FirstNameSim); err != nil {
			return nil, fmt.Errorf("error scanning instructor candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Assignments joins the given instructors to their (section, instructor)
// pairs within the eligibility filter. Only principal, non-cancelled
// sections qualify; when a term set is requested, the section term must be
// in it.
func (r *InstructorRepository) Assignments(ctx context.Context, f search.Filter, instructorIDs []int64) ([]search.TeachingAssignment, error) {
	if len(instructorIDs) == 0 {
		return nil, nil
	}

	b := r.sb.Select().
		Distinct().
		Column("co.id").
		Column("sec.id").
		Column("si.instructor_id").
		Column(squirrel.Expr("si.role = ? AS is_assistant", string(models.RoleTeachingAssistant))).
		From("schedule_instructors si").
		Join("schedules sch ON sch.id = si.schedule_id").
		Join("sections sec ON sec.id = sch.section_id").
		Join("course_offerings co ON co.id = sec.offering_id").
		Where(squirrel.Expr("si.instructor_id = ANY(?)", instructorIDs)).
		Where(squirrel.Eq{"sec.is_principal": true, "sec.is_cancelled": false})
	if len(f.Quarters) > 0 {
		b = b.Where(squirrel.Expr("sec.term = ANY(?)", termStrings(f.Quarters)))
	}
	b = applyEligibility(b, f)
	b = b.OrderBy("co.id", "sec.id", "si.instructor_id")

	sql, args, err := b.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building teaching assignments SQL")
		return nil, fmt.Errorf("failed to build teaching assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying teaching assignments: %w", err)
	}
	defer rows.Close()

	var assignments []search.TeachingAssignment
	for rows.Next() {
		var a search.TeachingAssignment
		if err := rows.Scan(&a.OfferingID, &a.SectionID, &a.InstructorID, &a.IsAssistant); err != nil {
			return nil, fmt.Errorf("error scanning teaching assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
