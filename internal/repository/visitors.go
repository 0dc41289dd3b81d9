package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visitordesk/api/internal/entity"
)

// Sentinel errors surfaced to callers for response mapping.
var (
	ErrVisitorNotFound = errors.New("visitor not found")
	ErrPhoneDuplicate  = errors.New("phone number already registered")
)

// VisitorsRepository describes persistence operations for visitor records.
type VisitorsRepository interface {
	FindByPhone(ctx context.Context, phone string) (*entity.Visitor, error)
	Upsert(ctx context.Context, visitor *entity.Visitor) (*entity.Visitor, bool, error)
	List(ctx context.Context) ([]entity.Visitor, error)
	UpdateByID(ctx context.Context, id uuid.UUID, input UpdateVisitorInput) (*entity.Visitor, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Visitor, error)
	MarkEmailSent(ctx context.Context, email string) error
}

// UpdateVisitorInput carries the mutable fields for an admin-triggered update.
type UpdateVisitorInput struct {
	Name                string
	PersonalPhoneNumber string
	Email               string
	CompanyName         string
	CompanyPhoneNumber  string
	Address             string
	OTPVerified         bool
}

// PGXVisitorsRepository implements VisitorsRepository using pgx.
type PGXVisitorsRepository struct {
	pool pgxPool
}

// NewPGXVisitorsRepository wires a pgx backed repository.
func NewPGXVisitorsRepository(pool *pgxpool.Pool) *PGXVisitorsRepository {
	return &PGXVisitorsRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const visitorColumns = `id, personal_phone_number, name, email, company_name, company_phone_number, address, visiting_card_image_url, otp_verified, capture_method, email_sent, created_at, updated_at`

// FindByPhone fetches the record keyed by the subscriber number, if any.
func (r *PGXVisitorsRepository) FindByPhone(ctx context.Context, phone string) (*entity.Visitor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+visitorColumns+` FROM visitors WHERE personal_phone_number = $1`, phone)

	visitor, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitorNotFound
		}
		return nil, fmt.Errorf("query visitor by phone: %w", err)
	}
	return visitor, nil
}

const upsertVisitorSQL = `
        INSERT INTO visitors (
            personal_phone_number,
            name,
            email,
            company_name,
            company_phone_number,
            address,
            visiting_card_image_url,
            otp_verified,
            capture_method
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (personal_phone_number) DO UPDATE SET
            name = EXCLUDED.name,
            email = EXCLUDED.email,
            company_name = EXCLUDED.company_name,
            company_phone_number = EXCLUDED.company_phone_number,
            address = EXCLUDED.address,
            visiting_card_image_url = EXCLUDED.visiting_card_image_url,
            otp_verified = EXCLUDED.otp_verified,
            capture_method = EXCLUDED.capture_method,
            updated_at = NOW()
        RETURNING ` + visitorColumns + `, xmax = 0;
    `

// Upsert atomically creates or overwrites the record keyed by phone number.
// The boolean result reports whether a new row was inserted. Two concurrent
// submissions for the same phone cannot both insert; the loser becomes an
// update against the winner's row.
func (r *PGXVisitorsRepository) Upsert(ctx context.Context, visitor *entity.Visitor) (*entity.Visitor, bool, error) {
	if visitor == nil {
		return nil, false, fmt.Errorf("visitor payload is nil")
	}

	row := r.pool.QueryRow(ctx, upsertVisitorSQL,
		visitor.PersonalPhoneNumber,
		visitor.Name,
		visitor.Email,
		visitor.CompanyName,
		visitor.CompanyPhoneNumber,
		visitor.Address,
		visitor.VisitingCardImageURL,
		visitor.OTPVerified,
		visitor.CaptureMethod,
	)

	var (
		persisted entity.Visitor
		inserted  bool
	)
	if err := row.Scan(append(visitorDest(&persisted), &inserted)...); err != nil {
		return nil, false, fmt.Errorf("upsert visitor: %w", err)
	}

	return &persisted, inserted, nil
}

// List returns all visitors ordered by creation date (newest first).
func (r *PGXVisitorsRepository) List(ctx context.Context) ([]entity.Visitor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+visitorColumns+` FROM visitors ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	return scanVisitors(rows)
}

// UpdateByID overwrites the mutable fields of the identified record.
func (r *PGXVisitorsRepository) UpdateByID(ctx context.Context, id uuid.UUID, input UpdateVisitorInput) (*entity.Visitor, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE visitors SET
            name = $1,
            personal_phone_number = $2,
            email = $3,
            company_name = $4,
            company_phone_number = $5,
            address = $6,
            otp_verified = $7,
            updated_at = NOW()
        WHERE id = $8
        RETURNING `+visitorColumns,
		input.Name,
		input.PersonalPhoneNumber,
		input.Email,
		input.CompanyName,
		input.CompanyPhoneNumber,
		input.Address,
		input.OTPVerified,
		id,
	)

	visitor, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %v", ErrPhoneDuplicate, pgErr)
		}
		return nil, fmt.Errorf("update visitor: %w", err)
	}
	return visitor, nil
}

// DeleteByID removes a visitor and returns the deleted record.
func (r *PGXVisitorsRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Visitor, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM visitors WHERE id = $1 RETURNING `+visitorColumns, id)

	visitor, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitorNotFound
		}
		return nil, fmt.Errorf("delete visitor: %w", err)
	}
	return visitor, nil
}

// MarkEmailSent flags every record carrying the given email address.
func (r *PGXVisitorsRepository) MarkEmailSent(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `UPDATE visitors SET email_sent = TRUE, updated_at = NOW() WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	return nil
}

func visitorDest(v *entity.Visitor) []any {
	return []any{
		&v.ID,
		&v.PersonalPhoneNumber,
		&v.Name,
		&v.Email,
		&v.CompanyName,
		&v.CompanyPhoneNumber,
		&v.Address,
		&v.VisitingCardImageURL,
		&v.OTPVerified,
		&v.CaptureMethod,
		&v.EmailSent,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

func scanVisitor(row pgx.Row) (*entity.Visitor, error) {
	var visitor entity.Visitor
	if err := row.Scan(visitorDest(&visitor)...); err != nil {
		return nil, err
	}
	return &visitor, nil
}

func scanVisitors(rows pgx.Rows) ([]entity.Visitor, error) {
	var visitors []entity.Visitor
	for rows.Next() {
		var visitor entity.Visitor
		if err := rows.Scan(visitorDest(&visitor)...); err != nil {
			return nil, fmt.Errorf("scan visitor row: %w", err)
		}
		visitors = append(visitors, visitor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visitors: %w", err)
	}
	return visitors, nil
}
