package returns

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"

	"devoluciones-backend/internal/remote/inventory"
	"devoluciones-backend/internal/remote/loans"
)

// ===== interfaces =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// LoanService is the slice of the loan microservice the workflow needs.
// Implemented by *loans.Client.
type LoanService interface {
	Get(ctx context.Context, loanID int64) (*loans.Snapshot, error)
	Close(ctx context.Context, loanID int64) error
}

// InventoryService is the slice of the inventory microservice the workflow
// needs. Implemented by *inventory.Client.
type InventoryService interface {
	Get(ctx context.Context, equipmentID int64) (*inventory.Equipment, error)
	MarkAvailable(ctx context.Context, equipmentID int64) error
}

// RecordStore is implemented by *Store.
type RecordStore interface {
	InsertReturn(ctx context.Context, d *Devolucion) error
	GetReturnByID(ctx context.Context, returnID int64) (*Devolucion, error)
	GetReturnByULID(ctx context.Context, returnULID string) (*Devolucion, error)
	ListReturns(ctx context.Context, f ReturnFilter, p Page) ([]Devolucion, int64, error)
}

// ===== Service =====

type Service struct {
	store RecordStore
	loans LoanService
	inv   InventoryService
	clock Clock
	id    IDGen
}

func NewService(conn *sql.DB, loanSvc LoanService, invSvc InventoryService) *Service {
	return &Service{
		store: NewStore(conn),
		loans: loanSvc,
		inv:   invSvc,
		clock: realClock{},
		id:    ulidGen{},
	}
}

// equipmentAvailable checks the inventory sentinel. The inventory service
// speaks Spanish but some deployments answer in English, so both sentinels
// are accepted, case-folded. Casers are stateful, so one is built per call.
func equipmentAvailable(status string) bool {
	s := cases.Fold().String(strings.TrimSpace(status))
	return s == "disponible" || s == "available"
}

// CreateReturn runs the full return-reconciliation workflow:
// fetch loan, fetch equipment, short-circuit if already available, evaluate
// lateness, enforce the penalty rule, persist, then notify both services.
func (s *Service) CreateReturn(ctx context.Context, req CreateReturnRequest) (*CreateReturnResult, error) {
	if req.LoanID <= 0 {
		return nil, ErrInvalid("prestamo_id must be > 0")
	}
	if req.ReceivedByID <= 0 {
		return nil, ErrInvalid("recibido_por_id must be > 0")
	}

	snap, err := s.loans.Get(ctx, req.LoanID)
	if err != nil {
		log.Printf("[WARN] loan lookup failed for prestamo %d: %v", req.LoanID, err)
		return nil, ErrLoanNotFound("no se encontró el préstamo")
	}

	eq, err := s.inv.Get(ctx, snap.EquipmentID)
	if err != nil {
		log.Printf("[WARN] equipment lookup failed for equipo %d: %v", snap.EquipmentID, err)
		return nil, ErrEquipmentLookup("no se pudo verificar el equipo")
	}

	if equipmentAvailable(eq.Status) {
		// A previous call already completed the workflow for this loan.
		return &CreateReturnResult{
			AlreadyAvailable: true,
			Message:          "el equipo ya fue devuelto y está disponible",
		}, nil
	}

	raw := snap.CommitmentTimestamp()
	if raw == "" {
		return nil, ErrMissingCommitment("el préstamo no tiene fecha de compromiso")
	}
	commitment, err := ParseCommitment(raw)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	overdue := IsOverdue(commitment, now)

	penalty := 0.0
	if req.PenaltyPoints != nil {
		penalty = *req.PenaltyPoints
	}
	if overdue && penalty == 0 {
		return nil, ErrPenaltyRequired("el préstamo está vencido, ingrese sanción en puntos para continuar")
	}
	if !overdue {
		penalty = 0
	}

	idStr, err := s.id.New()
	if err != nil {
		return nil, ErrInternal(err.Error())
	}

	d := &Devolucion{
		ReturnULID:    idStr,
		LoanID:        req.LoanID,
		CreatedAt:     now,
		ReceivedByID:  req.ReceivedByID,
		Condition:     DefaultCondition,
		WasOverdue:    overdue,
		PenaltyPoints: penalty,
	}
	if req.Condition != nil && *req.Condition != "" {
		d.Condition = *req.Condition
	}
	if req.Note != nil && *req.Note != "" {
		d.Note = sql.NullString{String: *req.Note, Valid: true}
	}

	if err := s.store.InsertReturn(ctx, d); err != nil {
		log.Printf("[ERROR] failed to persist devolucion for prestamo %d: %v", req.LoanID, err)
		return nil, ErrInternal("no se pudo registrar la devolución")
	}

	// The local record is committed at this point. The two updates are
	// fire-and-forget and never compensated; order is loan service first,
	// then inventory.
	if err := s.loans.Close(ctx, req.LoanID); err != nil {
		log.Printf("[WARN] failed to close prestamo %d on loan service: %v", req.LoanID, err)
	}
	if err := s.inv.MarkAvailable(ctx, snap.EquipmentID); err != nil {
		log.Printf("[WARN] failed to mark equipo %d available on inventory service: %v", snap.EquipmentID, err)
	}

	resp := d.toDTO()
	return &CreateReturnResult{
		Message: "devolución registrada correctamente",
		Record:  &resp,
	}, nil
}

// CheckStatus is the read-only variant of the workflow: it reports whether
// the equipment is already back, or whether the loan is overdue or active,
// without persisting anything or touching the remote state.
func (s *Service) CheckStatus(ctx context.Context, loanID int64) (*StatusResponse, error) {
	if loanID <= 0 {
		return nil, ErrInvalid("prestamo_id must be > 0")
	}

	snap, err := s.loans.Get(ctx, loanID)
	if err != nil {
		log.Printf("[WARN] loan lookup failed for prestamo %d: %v", loanID, err)
		return nil, ErrLoanNotFound("no se encontró el préstamo")
	}

	eq, err := s.inv.Get(ctx, snap.EquipmentID)
	if err != nil {
		log.Printf("[WARN] equipment lookup failed for equipo %d: %v", snap.EquipmentID, err)
		return nil, ErrEquipmentLookup("no se pudo verificar el equipo")
	}

	if equipmentAvailable(eq.Status) {
		return &StatusResponse{
			State:   StateAvailable,
			Message: "el equipo ya fue devuelto y está disponible",
		}, nil
	}

	raw := snap.CommitmentTimestamp()
	if raw == "" {
		return nil, ErrMissingCommitment("el préstamo no tiene fecha de compromiso")
	}
	commitment, err := ParseCommitment(raw)
	if err != nil {
		return nil, err
	}

	if IsOverdue(commitment, s.clock.Now()) {
		return &StatusResponse{
			State:   StateOverdue,
			Message: "el préstamo está vencido, se requiere ingresar sanción en puntos",
		}, nil
	}
	return &StatusResponse{
		State:   StateActive,
		Message: "el préstamo está activo, puede registrar la devolución sin sanción",
	}, nil
}

// GetReturn fetches one return record by numeric id or ULID.
func (s *Service) GetReturn(ctx context.Context, key string) (*ReturnResponse, error) {
	if key == "" {
		return nil, ErrInvalid("id or ulid is required")
	}

	var (
		d   *Devolucion
		err error
	)
	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil && id > 0 {
		d, err = s.store.GetReturnByID(ctx, id)
	} else {
		d, err = s.store.GetReturnByULID(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	resp := d.toDTO()
	return &resp, nil
}

// ListReturns lists persisted returns with the admin-style filters.
func (s *Service) ListReturns(ctx context.Context, f ReturnFilter, p Page) (*ReturnListResponse, error) {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	rows, total, err := s.store.ListReturns(ctx, f, p)
	if err != nil {
		return nil, err
	}

	items := make([]ReturnResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return &ReturnListResponse{Items: items, Total: total}, nil
}
