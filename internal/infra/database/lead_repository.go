package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/leadpulse/internal/entity"
)

var ErrDuplicateLead = errors.New("lead already exists")

const leadColumns = `id, name, email, phone, company, service, source, campaign,
	status, assigned_to, notes, value, created_at, updated_at`

const qualifiedLeadColumns = `l.id, l.name, l.email, l.phone, l.company, l.service,
	l.source, l.campaign, l.status, l.assigned_to, l.notes, l.value,
	l.created_at, l.updated_at`

// LeadRepository is the PostgreSQL-backed lead store.
type LeadRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db, now: time.Now}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Service,
		lead.Source,
		lead.Campaign,
		string(lead.Status),
		lead.AssignedTo,
		lead.Notes,
		lead.Value,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateLead, lead.ID)
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %s: %w", id, err)
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// UpdateStatus locks the row in a CTE so the returned previous status is the
// one this update replaced.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, entity.LeadStatus, error) {
	query := `
		WITH prev AS (
			SELECT id, status FROM leads WHERE id = $1 FOR UPDATE
		)
		UPDATE leads l
		SET status = $2, updated_at = GREATEST($3, l.created_at)
		FROM prev
		WHERE l.id = prev.id
		RETURNING ` + qualifiedLeadColumns + `, prev.status`

	var previous string
	row := r.DB.QueryRowContext(ctx, query, id, string(status), r.now())
	lead, err := scanLead(row, &previous)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("update lead %s status: %w", id, err)
	}
	return lead, entity.LeadStatus(previous), nil
}

func (r *LeadRepository) Assign(ctx context.Context, id, assignee string) (*entity.Lead, error) {
	return r.update(ctx, id, `assigned_to = $2`, assignee)
}

func (r *LeadRepository) AppendNote(ctx context.Context, id, text string) (*entity.Lead, error) {
	return r.update(ctx, id, `notes = notes || E'\n' || $2`, text)
}

// update applies one SET clause; GREATEST keeps updated_at >= created_at.
func (r *LeadRepository) update(ctx context.Context, id, set string, arg any) (*entity.Lead, error) {
	query := `
		UPDATE leads
		SET ` + set + `, updated_at = GREATEST($3, created_at)
		WHERE id = $1
		RETURNING ` + leadColumns

	row := r.DB.QueryRowContext(ctx, query, id, arg, r.now())
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLead reads leadColumns in order, followed by any extra destinations.
func scanLead(row rowScanner, extra ...any) (*entity.Lead, error) {
	var (
		lead   entity.Lead
		status string
	)
	dest := []any{
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Service,
		&lead.Source,
		&lead.Campaign,
		&status,
		&lead.AssignedTo,
		&lead.Notes,
		&lead.Value,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	lead.Status = entity.LeadStatus(status)
	return &lead, nil
}
