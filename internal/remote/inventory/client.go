package inventory

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

// Equipment is the inventory state of one item. Estado is free text owned
// by the inventory service ("disponible", "prestado", ...).
type Equipment struct {
	EquipmentID int64  `json:"id"`
	Status      string `json:"estado"`
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

func (c *Client) url(equipmentID int64) string {
	return fmt.Sprintf("%s/%d/", c.base, equipmentID)
}

// Get fetches the equipment snapshot. Any non-2xx response is an error.
func (c *Client) Get(ctx context.Context, equipmentID int64) (*Equipment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(equipmentID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "inventory service unreachable")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.Errorf("inventory service returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read inventory response")
	}
	var eq Equipment
	if err := json.Unmarshal(body, &eq); err != nil {
		return nil, errors.Wrap(err, "failed to decode inventory response")
	}
	if eq.EquipmentID == 0 {
		eq.EquipmentID = equipmentID
	}
	return &eq, nil
}

// MarkAvailable flips the equipment back to "disponible". Fire-and-forget
// from the workflow's perspective; callers only log a failure.
func (c *Client) MarkAvailable(ctx context.Context, equipmentID int64) error {
	payload, err := json.Marshal(map[string]string{"estado": "disponible"})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.url(equipmentID), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(err, "inventory service unreachable")
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode >= 400 {
		return errors.Errorf("inventory service returned status %d", res.StatusCode)
	}
	return nil
}
