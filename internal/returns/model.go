package returns

import (
	"database/sql"
	"time"
)

// Devolucion is one row of the devoluciones table. prestamo_id and
// recibido_por_id are bare external references; the owning services are the
// only authority on their existence.
type Devolucion struct {
	ReturnID      int64
	ReturnULID    string
	LoanID        int64
	CreatedAt     time.Time
	Note          sql.NullString
	ReceivedByID  int64
	Condition     string
	WasOverdue    bool
	PenaltyPoints float64 // DECIMAL(5,2); 0 when the loan was on time
}

func (d *Devolucion) toDTO() ReturnResponse {
	resp := ReturnResponse{
		ReturnID:      d.ReturnID,
		ReturnULID:    d.ReturnULID,
		LoanID:        d.LoanID,
		CreatedAt:     d.CreatedAt.UTC(),
		ReceivedByID:  d.ReceivedByID,
		Condition:     d.Condition,
		WasOverdue:    d.WasOverdue,
		PenaltyPoints: d.PenaltyPoints,
	}
	if d.Note.Valid {
		val := d.Note.String
		resp.Note = &val
	}
	return resp
}
