package loans

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the loan state as served by the loan microservice.
type Snapshot struct {
	LoanID      int64 `json:"id"`
	EquipmentID int64 `json:"equipo_id"`
	BorrowerID  int64 `json:"usuario_id"`
	// The upstream contract is not pinned yet: current deployments serve
	// fecha_compromiso, older ones fecha_devolucion_programada.
	Commitment       string `json:"fecha_compromiso"`
	CommitmentLegacy string `json:"fecha_devolucion_programada"`
}

// CommitmentTimestamp returns the committed-return timestamp, whichever
// field the upstream populated. Empty means the loan has no commitment date.
func (s *Snapshot) CommitmentTimestamp() string {
	if s.Commitment != "" {
		return s.Commitment
	}
	return s.CommitmentLegacy
}

type Client struct {
	base string
	hc   *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) url(loanID int64) string {
	return fmt.Sprintf("%s/%d/", c.base, loanID)
}

// Get fetches the loan snapshot. Any non-2xx response is an error.
func (c *Client) Get(ctx context.Context, loanID int64) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(loanID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "loan service unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.Errorf("loan service returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read loan response")
	}
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, errors.Wrap(err, "failed to decode loan response")
	}
	if snap.LoanID == 0 {
		snap.LoanID = loanID
	}
	return &snap, nil
}

// Close marks the loan as returned on the loan service. The response body
// is never inspected; callers treat this as fire-and-forget and only log.
func (c *Client) Close(ctx context.Context, loanID int64) error {
	payload, err := json.Marshal(map[string]string{"estado": "devuelto"})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.url(loanID), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(err, "loan service unreachable")
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode >= 400 {
		return errors.Errorf("loan service returned status %d", res.StatusCode)
	}
	return nil
}
