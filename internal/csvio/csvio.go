// Package csvio reads and writes the semicolon-delimited CSV files used
// for bulk data exchange. Files carry a UTF-8 BOM so spreadsheet tools
// pick the right encoding.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
)

type EquipmentLister interface {
	ListAll(ctx context.Context) ([]domain.Equipment, error)
}

type ClientLister interface {
	ListAll(ctx context.Context) ([]domain.Client, error)
}

type RentLister interface {
	ListAll(ctx context.Context) ([]domain.Rent, error)
}

const (
	Delimiter  = ';'
	dateLayout = "2006-01-02"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func newWriter(w io.Writer) (*csv.Writer, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return nil, fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return cw, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bomStrippingReader(r))
	cr.Comma = Delimiter
	cr.TrimLeadingSpace = true
	return cr
}

// bomStrippingReader drops a leading UTF-8 BOM if present.
func bomStrippingReader(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	if n == 3 && buf[0] == utf8BOM[0] && buf[1] == utf8BOM[1] && buf[2] == utf8BOM[2] {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}

var equipmentHeader = []string{"id", "equipment_name", "equipment_code", "description", "power", "weight", "fuel_type", "rental_price_day", "status"}

func ExportEquipment(ctx context.Context, w io.Writer, repo EquipmentLister) error {
	items, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	cw, err := newWriter(w)
	if err != nil {
		return err
	}
	if err := cw.Write(equipmentHeader); err != nil {
		return err
	}
	for _, eq := range items {
		record := []string{
			strconv.Itoa(int(eq.ID)),
			eq.Name,
			eq.Code,
			eq.Description,
			eq.Power.String(),
			eq.Weight.String(),
			string(eq.FuelType),
			eq.RentalPriceDay.String(),
			string(eq.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var clientHeader = []string{"id", "email", "phone_number", "type"}

func ExportClients(ctx context.Context, w io.Writer, repo ClientLister) error {
	clients, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	cw, err := newWriter(w)
	if err != nil {
		return err
	}
	if err := cw.Write(clientHeader); err != nil {
		return err
	}
	for _, c := range clients {
		record := []string{
			strconv.Itoa(int(c.ID)),
			c.Email,
			c.PhoneNumber,
			string(c.Type),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var rentHeader = []string{"id", "rent_agreement_number", "client_id", "staff_id", "start_date", "planned_end_date", "actual_end_date", "rent_status", "total_amount", "is_paid"}

func ExportRents(ctx context.Context, w io.Writer, repo RentLister) error {
	rents, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	cw, err := newWriter(w)
	if err != nil {
		return err
	}
	if err := cw.Write(rentHeader); err != nil {
		return err
	}
	for _, r := range rents {
		actualEnd := ""
		if r.ActualEndDate != nil {
			actualEnd = r.ActualEndDate.Format(dateLayout)
		}
		record := []string{
			strconv.Itoa(int(r.ID)),
			r.AgreementNumber,
			strconv.Itoa(int(r.ClientID)),
			strconv.Itoa(int(r.StaffID)),
			r.StartDate.Format(dateLayout),
			r.PlannedEndDate.Format(dateLayout),
			actualEnd,
			string(r.Status),
			r.TotalAmount.StringFixed(2),
			strconv.FormatBool(r.IsPaid),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportEquipment reads rows in the export layout and creates a record
// for each. The id column is ignored; rows that fail validation are
// skipped and reported, not fatal.
func ImportEquipment(ctx context.Context, r io.Reader, create func(context.Context, *domain.Equipment) error) (*ImportResult, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapHeader(header, equipmentHeader)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		eq, err := equipmentFromRecord(record, cols)
		if err == nil {
			err = create(ctx, eq)
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func ImportClients(ctx context.Context, r io.Reader, create func(context.Context, *domain.Client) error) (*ImportResult, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapHeader(header, clientHeader)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		client := &domain.Client{
			Email:       record[cols["email"]],
			PhoneNumber: record[cols["phone_number"]],
			Type:        domain.ClientType(record[cols["type"]]),
		}
		if err := create(ctx, client); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func equipmentFromRecord(record []string, cols map[string]int) (*domain.Equipment, error) {
	eq := &domain.Equipment{
		Name:        record[cols["equipment_name"]],
		Code:        record[cols["equipment_code"]],
		Description: record[cols["description"]],
		FuelType:    domain.FuelType(record[cols["fuel_type"]]),
		Status:      domain.EquipmentStatus(record[cols["status"]]),
	}
	var err error
	if eq.Power, err = parseDecimal(record[cols["power"]]); err != nil {
		return nil, fmt.Errorf("power: %w", err)
	}
	if eq.Weight, err = parseDecimal(record[cols["weight"]]); err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	if eq.RentalPriceDay, err = parseDecimal(record[cols["rental_price_day"]]); err != nil {
		return nil, fmt.Errorf("rental_price_day: %w", err)
	}
	return eq, nil
}

func mapHeader(got, want []string) (map[string]int, error) {
	cols := make(map[string]int, len(got))
	for i, name := range got {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range want {
		if name == "id" {
			continue
		}
		if _, ok := cols[name]; !ok {
			return nil, domain.NewValidationError("missing column %q", name)
		}
	}
	return cols, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	// Spreadsheets in ru locales export a comma decimal separator.
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
