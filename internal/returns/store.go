package returns

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"devoluciones-backend/internal/platform/db"
)

type Store struct {
	db db.DBTX
}

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

const returnColumns = `devolucion_id, devolucion_ulid, prestamo_id, fecha, observacion, recibido_por_id, condicion, prestamo_vencido, sancion_puntos`

func (s *Store) InsertReturn(ctx context.Context, d *Devolucion) error {
	const q = `
	INSERT INTO devoluciones
	(devolucion_ulid, prestamo_id, fecha, observacion, recibido_por_id, condicion, prestamo_vencido, sancion_puntos)
	VALUES
	(?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, q,
		d.ReturnULID,
		d.LoanID,
		d.CreatedAt,
		nullStrOrNil(d.Note),
		d.ReceivedByID,
		d.Condition,
		d.WasOverdue,
		d.PenaltyPoints,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	d.ReturnID = id
	return nil
}

func (s *Store) GetReturnByID(ctx context.Context, returnID int64) (*Devolucion, error) {
	q := fmt.Sprintf(`SELECT %s FROM devoluciones WHERE devolucion_id = ?`, returnColumns)
	return s.scanOne(s.db.QueryRowContext(ctx, q, returnID))
}

func (s *Store) GetReturnByULID(ctx context.Context, returnULID string) (*Devolucion, error) {
	q := fmt.Sprintf(`SELECT %s FROM devoluciones WHERE devolucion_ulid = ?`, returnColumns)
	return s.scanOne(s.db.QueryRowContext(ctx, q, returnULID))
}

func (s *Store) scanOne(row *sql.Row) (*Devolucion, error) {
	var (
		d       Devolucion
		penalty sql.NullFloat64
	)
	err := row.Scan(
		&d.ReturnID, &d.ReturnULID, &d.LoanID, &d.CreatedAt,
		&d.Note, &d.ReceivedByID, &d.Condition, &d.WasOverdue, &penalty,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("devolución no encontrada")
		}
		return nil, err
	}
	d.PenaltyPoints = penalty.Float64
	return &d, nil
}

// ListReturns builds a dynamic WHERE from the filter and returns the page
// plus the total count for the same conditions.
func (s *Store) ListReturns(ctx context.Context, f ReturnFilter, p Page) ([]Devolucion, int64, error) {
	var (
		sb     strings.Builder
		wheres []string
		args   []any
	)

	sb.WriteString(fmt.Sprintf(`SELECT %s FROM devoluciones`, returnColumns))

	if f.LoanID != nil {
		wheres = append(wheres, "prestamo_id = ?")
		args = append(args, *f.LoanID)
	}
	if f.ReceivedByID != nil {
		wheres = append(wheres, "recibido_por_id = ?")
		args = append(args, *f.ReceivedByID)
	}
	if f.Overdue != nil {
		wheres = append(wheres, "prestamo_vencido = ?")
		args = append(args, *f.Overdue)
	}
	if f.Condition != nil && *f.Condition != "" {
		wheres = append(wheres, "condicion = ?")
		args = append(args, *f.Condition)
	}
	if f.From != nil {
		wheres = append(wheres, "fecha >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		wheres = append(wheres, "fecha < ?")
		args = append(args, *f.To)
	}
	if len(wheres) > 0 {
		sb.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	order := "DESC"
	if strings.ToLower(p.Order) == "asc" {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY fecha %s, devolucion_id %s", order, order))

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString(" LIMIT ? OFFSET ?")
	qArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), qArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Devolucion
	for rows.Next() {
		var (
			d       Devolucion
			penalty sql.NullFloat64
		)
		if err := rows.Scan(
			&d.ReturnID, &d.ReturnULID, &d.LoanID, &d.CreatedAt,
			&d.Note, &d.ReceivedByID, &d.Condition, &d.WasOverdue, &penalty,
		); err != nil {
			return nil, 0, err
		}
		d.PenaltyPoints = penalty.Float64
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var cb strings.Builder
	cb.WriteString("SELECT COUNT(*) FROM devoluciones")
	if len(wheres) > 0 {
		cb.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cb.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
