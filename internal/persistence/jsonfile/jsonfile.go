// Package jsonfile stores the ledger as a flat JSON array in a single file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gastos/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const indent = "    "

// record is the on-disk shape. Field order is the file's key order.
type record struct {
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
}

// UnmarshalJSON also accepts the Spanish keys of files written by the
// older gastos script. The English key wins when both are present.
func (r *record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description string      `json:"description"`
		Category    string      `json:"category"`
		Date        string      `json:"date"`
		Amount      json.Number `json:"amount"`

		Descripcion string      `json:"descripcion"`
		Categoria   string      `json:"categoria"`
		Fecha       string      `json:"fecha"`
		Monto       json.Number `json:"monto"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = record{
		Description: firstNonEmpty(raw.Description, raw.Descripcion),
		Category:    firstNonEmpty(raw.Category, raw.Categoria),
		Date:        firstNonEmpty(raw.Date, raw.Fecha),
		Amount:      json.Number(firstNonEmpty(string(raw.Amount), string(raw.Monto))),
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole file. A missing file is an empty ledger.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var rows []record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	out := make([]core.Expense, 0, len(rows))
	for i, r := range rows {
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("decode %s: record %d: amount %q: %w", s.path, i, r.Amount, err)
		}
		out = append(out, core.Expense{
			ID:          uuid.New(),
			Description: r.Description,
			Category:    r.Category,
			Date:        r.Date,
			Amount:      amount,
		})
	}
	return out, nil
}

// Save overwrites the file with records.
func (s *Store) Save(_ context.Context, records []core.Expense) error {
	rows := make([]record, len(records))
	for i, e := range records {
		rows[i] = record{
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date,
			Amount:      json.Number(e.Amount.String()),
		}
	}

	data, err := json.MarshalIndent(rows, "", indent)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
