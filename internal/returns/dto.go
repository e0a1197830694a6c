package returns

import "time"

const (
	DefaultCondition = "Bueno"
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

type CreateReturnRequest struct {
	LoanID       int64   `json:"prestamo_id" binding:"required"`
	ReceivedByID int64   `json:"recibido_por_id" binding:"required"`
	Note         *string `json:"observacion,omitempty"`
	Condition    *string `json:"condicion,omitempty"`
	// Required (non-zero) only when the loan turns out to be overdue.
	PenaltyPoints *float64 `json:"sancion_puntos,omitempty"`
}

type ReturnResponse struct {
	ReturnID      int64     `json:"devolucion_id"`
	ReturnULID    string    `json:"devolucion_ulid"`
	LoanID        int64     `json:"prestamo_id"`
	CreatedAt     time.Time `json:"fecha"`
	Note          *string   `json:"observacion,omitempty"`
	ReceivedByID  int64     `json:"recibido_por_id"`
	Condition     string    `json:"condicion"`
	WasOverdue    bool      `json:"prestamo_vencido"`
	PenaltyPoints float64   `json:"sancion_puntos"`
}

// CreateReturnResult distinguishes a freshly persisted return from the
// informational "equipment already available" short circuit.
type CreateReturnResult struct {
	AlreadyAvailable bool
	Message          string
	Record           *ReturnResponse
}

type LoanState string

const (
	StateAvailable LoanState = "disponible"
	StateOverdue   LoanState = "vencido"
	StateActive    LoanState = "activo"
)

type StatusResponse struct {
	State   LoanState `json:"estado"`
	Message string    `json:"mensaje"`
}

type ReturnFilter struct {
	LoanID       *int64
	ReceivedByID *int64
	Overdue      *bool
	Condition    *string
	From         *time.Time
	To           *time.Time
}

type Page struct {
	Limit  int
	Offset int
	Order  string
}

type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Total int64            `json:"total"`
}
