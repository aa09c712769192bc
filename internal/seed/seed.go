package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

// CreateDefaultData inserts the evaluation metric catalog and, when the
// catalog is empty, a small set of sample courses so a fresh instance is
// searchable out of the box. All inserts are idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (eval metrics, sample catalog)...")
	var finalErr error

	if err := seedEvalMetrics(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Error seeding eval metrics")
		finalErr = errors.Join(finalErr, err)
	}

	var offeringCount int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM course_offerings`).Scan(&offeringCount); err != nil {
		return errors.Join(finalErr, fmt.Errorf("failed to count offerings: %w", err))
	}

	if offeringCount == 0 {
		if err := seedSampleCatalog(ctx, dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Error seeding sample catalog")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if _, err := dbPool.Exec(ctx, `REFRESH MATERIALIZED VIEW eligible_offerings`); err != nil {
		lgr.Error().Err(err).Msg("Error refreshing eligibility view")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedEvalMetrics inserts the fixed metric catalog.
func seedEvalMetrics(ctx context.Context, dbPool *pgxpool.Pool) error {
	metrics := []struct {
		slug      appModels.EvalSlug
		direction appModels.EvalDirection
		min, max  float64
	}{
		{appModels.EvalRating, appModels.DirectionHigherBetter, 1, 5},
		{appModels.EvalHours, appModels.DirectionLowerBetter, 0, 60},
		{appModels.EvalLearning, appModels.DirectionHigherBetter, 1, 5},
		{appModels.EvalOrganized, appModels.DirectionHigherBetter, 1, 5},
		{appModels.EvalGoals, appModels.DirectionHigherBetter, 1, 5},
		{appModels.EvalAttendInPerson, appModels.DirectionNeutral, 0, 100},
		{appModels.EvalAttendOnline, appModels.DirectionNeutral, 0, 100},
	}

	for _, m := range metrics {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO eval_metrics (slug, direction, range_min, range_max)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO NOTHING`,
			string(m.slug), string(m.direction), m.min, m.max)
		if err != nil {
			return fmt.Errorf("failed to insert metric %s: %w", m.slug, err)
		}
	}
	return nil
}

// seedSampleCatalog creates two subjects with a handful of offerings,
// sections and instructors for local development.
func seedSampleCatalog(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	const year = "2024-2025"

	subjectIDs := map[string]int64{}
	for _, s := range []struct{ code, name string }{
		{"CS", "Computer Science"},
		{"MATH", "Mathematics"},
	} {
		var id int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO subjects (code, name) VALUES ($1, $2)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, s.code, s.name).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert subject %s: %w", s.code, err)
		}
		subjectIDs[s.code] = id
	}

	offerings := []struct {
		subject  string
		number   int
		suffix   *string
		title    string
		desc     string
		units    [2]int
		ways     []string
		terms    []appModels.Term
		prof     [3]string // account, first, last
	}{
		{"CS", 106, ptr("A"), "Programming Methodology",
			"Introduction to the engineering of computer applications emphasizing modern software engineering principles.",
			[2]int{3, 5}, []string{"WAY-FR"}, []appModels.Term{appModels.TermAutumn, appModels.TermWinter, appModels.TermSpring},
			[3]string{"mbrandon", "Mehran", "Sahami"}},
		{"CS", 106, ptr("B"), "Programming Abstractions",
			"Abstraction and its relation to programming. Software engineering principles of data abstraction and modularity.",
			[2]int{3, 5}, []string{"WAY-FR"}, []appModels.Term{appModels.TermAutumn, appModels.TermWinter, appModels.TermSpring},
			[3]string{"kschwarz", "Keith", "Schwarz"}},
		{"MATH", 51, nil, "Linear Algebra and Differential Calculus",
			"Geometry and algebra of vectors, systems of linear equations, matrices and multivariable differential calculus.",
			[2]int{5, 5}, []string{"WAY-FR"}, []appModels.Term{appModels.TermAutumn, appModels.TermWinter},
			[3]string{"tchurch", "Thomas", "Church"}},
	}

	for _, o := range offerings {
		var offeringID int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO course_offerings
				(subject_id, code_number, code_suffix, year, title, description, units_min, units_max, ways)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			subjectIDs[o.subject], o.number, o.suffix, year, o.title, o.desc,
			o.units[0], o.units[1], o.ways).Scan(&offeringID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_offering_identity") {
				lgr.Debug().Str("subject", o.subject).Int("number", o.number).Msg("Offering already seeded, skipping")
				continue
			}
			return fmt.Errorf("failed to insert offering %s %d: %w", o.subject, o.number, err)
		}

		var instructorID int64
		err = dbPool.QueryRow(ctx, `
			INSERT INTO instructors (account_id, first_name, last_name, full_name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (account_id) DO UPDATE SET full_name = EXCLUDED.full_name
			RETURNING id`,
			o.prof[0], o.prof[1], o.prof[2], o.prof[1]+" "+o.prof[2]).Scan(&instructorID)
		if err != nil {
			return fmt.Errorf("failed to insert instructor %s: %w", o.prof[0], err)
		}

		for i, term := range o.terms {
			var sectionID int64
			err = dbPool.QueryRow(ctx, `
				INSERT INTO sections (offering_id, term, class_number, is_cancelled, is_principal)
				VALUES ($1, $2, $3, FALSE, TRUE)
				RETURNING id`,
				offeringID, string(term), i+1).Scan(&sectionID)
			if err != nil {
				return fmt.Errorf("failed to insert section: %w", err)
			}

			var scheduleID int64
			err = dbPool.QueryRow(ctx, `
				INSERT INTO schedules (section_id, days, start_time, end_time, location)
				VALUES ($1, 'MWF', '10:30', '11:20', 'Main Hall')
				RETURNING id`, sectionID).Scan(&scheduleID)
			if err != nil {
				return fmt.Errorf("failed to insert schedule: %w", err)
			}

			_, err = dbPool.Exec(ctx, `
				INSERT INTO schedule_instructors (schedule_id, instructor_id, role)
				VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING`,
				scheduleID, instructorID, string(appModels.RolePrimaryInstructor))
			if err != nil {
				return fmt.Errorf("failed to link instructor: %w", err)
			}

			if err := seedSectionStats(ctx, dbPool, sectionID); err != nil {
				return err
			}
		}
	}

	lgr.Info().Int("offerings", len(offerings)).Msg("Sample catalog created")
	return nil
}

// seedSectionStats gives each sample section a plausible rating and workload.
func seedSectionStats(ctx context.Context, dbPool *pgxpool.Pool, sectionID int64) error {
	stats := []struct {
		slug  appModels.EvalSlug
		value float64
	}{
		{appModels.EvalRating, 4.2},
		{appModels.EvalHours, 9.5},
	}
	for _, s := range stats {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO smart_averages (section_id, metric_id, value)
			SELECT $1, id, $3 FROM eval_metrics WHERE slug = $2
			ON CONFLICT (section_id, metric_id) DO NOTHING`,
			sectionID, string(s.slug), s.value)
		if err != nil {
			return fmt.Errorf("failed to insert smart average: %w", err)
		}
	}
	return nil
}

func ptr(s string) *string { return &s }
