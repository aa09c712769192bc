package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// OfferingRepository implements search.OfferingStore and serves single
// offering lookups for the detail endpoint.
type OfferingRepository struct {
	db *pgxpool.Pool
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

// Hydrate returns full offering records with nested sections, schedules and
// instructors, keyed by offering id.
func (r *OfferingRepository) Hydrate(ctx context.Context, year string, ids []int64) (map[int64]*models.CourseOffering, error) {
	if len(ids) == 0 {
		return map[int64]*models.CourseOffering{}, nil
	}

	offerings, err := r.loadOfferings(ctx, year, ids)
	if err != nil {
		return nil, err
	}
	if len(offerings) == 0 {
		return offerings, nil
	}

	sections, err := r.loadSections(ctx, ids)
	if err != nil {
		return nil, err
	}

	schedules, err := r.loadSchedules(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, section := range sections {
		section.Schedules = schedules[section.ID]
		if offering, ok := offerings[section.OfferingID]; ok {
			offering.Sections = append(offering.Sections, section)
		}
	}
	return offerings, nil
}

// GetByID retrieves one fully hydrated offering
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	var year string
	err := r.db.QueryRow(ctx, `SELECT year FROM course_offerings WHERE id = $1`, id).Scan(&year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}

	offerings, err := r.Hydrate(ctx, year, []int64{id})
	if err != nil {
		return nil, err
	}
	offering, ok := offerings[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return offering, nil
}

func (r *OfferingRepository) loadOfferings(ctx context.Context, year string, ids []int64) (map[int64]*models.CourseOffering, error) {
	query := `
		SELECT co.id, co.subject_id, s.code, co.code_number, co.code_suffix,
		       co.year, co.title, co.description,
		       co.academic_group, co.academic_career, co.academic_org,
		       co.units_min, co.units_max, co.ways
		FROM course_offerings co
		JOIN subjects s ON s.id = co.subject_id
		WHERE co.id = ANY($1) AND co.year = $2
	`

	rows, err := r.db.Query(ctx, query, ids, year)
	if err != nil {
		return nil, fmt.Errorf("error querying offerings: %w", err)
	}
	defer rows.Close()

	offerings := make(map[int64]*models.CourseOffering, len(ids))
	for rows.Next() {
		var offering models.CourseOffering
		if err := rows.Scan(
			&offering.ID, &offering.SubjectID, &offering.SubjectCode,
			&offering.CodeNumber, &offering.CodeSuffix,
			&offering.Year, &offering.Title, &offering.Description,
			&offering.AcademicGroup, &offering.AcademicCareer, &offering.AcademicOrg,
			&offering.UnitsMin, &offering.UnitsMax, &offering.Ways,
		); err != nil {
			return nil, fmt.Errorf("error scanning offering: %w", err)
		}
		offerings[offering.ID] = &offering
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *OfferingRepository) loadSections(ctx context.Context, offeringIDs []int64) ([]*models.Section, error) {
	query := `
		SELECT id, offering_id, term, class_number, is_cancelled, is_principal
		FROM sections
		WHERE offering_id = ANY($1)
		ORDER BY offering_id, id
	`

	rows, err := r.db.Query(ctx, query, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(
			&section.ID, &section.OfferingID, &section.Term,
			&section.ClassNumber, &section.IsCancelled, &section.IsPrincipal,
		); err != nil {
			return nil, fmt.Errorf("error scanning section: %w", err)
		}
		sections = append(sections, &section)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

// loadSchedules returns schedules with their instructors, grouped by section id.
func (r *OfferingRepository) loadSchedules(ctx context.Context, offeringIDs []int64) (map[int64][]*models.Schedule, error) {
	query := `
		SELECT sch.id, sch.section_id, sch.days, sch.start_time, sch.end_time, sch.location
		FROM schedules sch
		JOIN sections sec ON sec.id = sch.section_id
		WHERE sec.offering_id = ANY($1)
		ORDER BY sch.section_id, sch.id
	`

	rows, err := r.db.Query(ctx, query, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	bySection := make(map[int64][]*models.Schedule)
	byID := make(map[int64]*models.Schedule)
	for rows.Next() {
		var schedule models.Schedule
		if err := rows.Scan(
			&schedule.ID, &schedule.SectionID, &schedule.Days,
			&schedule.StartTime, &schedule.EndTime, &schedule.Location,
		); err != nil {
			return nil, fmt.Errorf("error scanning schedule: %w", err)
		}
		bySection[schedule.SectionID] = append(bySection[schedule.SectionID], &schedule)
		byID[schedule.ID] = &schedule
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(byID) == 0 {
		return bySection, nil
	}

	instructorQuery := `
		SELECT si.schedule_id, i.id, i.account_id, i.first_name, i.last_name, i.full_name, si.role
		FROM schedule_instructors si
		JOIN instructors i ON i.id = si.instructor_id
		JOIN schedules sch ON sch.id = si.schedule_id
		JOIN sections sec ON sec.id = sch.section_id
		WHERE sec.offering_id = ANY($1)
		ORDER BY si.schedule_id, i.id
	`

	instructorRows, err := r.db.Query(ctx, instructorQuery, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying schedule instructors: %w", err)
	}
	defer instructorRows.Close()

	for instructorRows.Next() {
		var (
			scheduleID int64
			instructor models.ScheduleInstructor
		)
		if err := instructorRows.Scan(
			&scheduleID, &instructor.ID, &instructor.AccountID,
			&instructor.FirstName, &instructor.LastName, &instructor.FullName,
			&instructor.Role,
		); err != nil {
			return nil, fmt.Errorf("error scanning schedule instructor: %w", err)
		}
		if schedule, ok := byID[scheduleID]; ok {
			schedule.Instructors = append(schedule.Instructors, &instructor)
		}
	}
	if err := instructorRows.Err(); err != nil {
		return nil, err
	}
	return bySection, nil
}
