package csvio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/domain"
)

type fakeEquipmentLister struct {
	items []domain.Equipment
}

func (f *fakeEquipmentLister) ListAll(context.Context) ([]domain.Equipment, error) {
	return f.items, nil
}

func TestExportEquipment(t *testing.T) {
	repo := &fakeEquipmentLister{items: []domain.Equipment{
		{
			ID: 10, Name: "Дрель ударная", Code: "EQ-010", Description: "cordless",
			Power:          decimal.RequireFromString("0.9"),
			Weight:         decimal.RequireFromString("2.5"),
			FuelType:       domain.FuelTypeElectric,
			RentalPriceDay: decimal.NewFromInt(1000),
			Status:         domain.EquipmentStatusAvailable,
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportEquipment(context.Background(), &buf, repo))

	out := buf.Bytes()
	// UTF-8 BOM, then a semicolon-delimited header.
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id;equipment_name;equipment_code;description;power;weight;fuel_type;rental_price_day;status", lines[0])
	assert.Contains(t, lines[1], "Дрель ударная")
	assert.Contains(t, lines[1], ";1000;")
}

func TestImportEquipment(t *testing.T) {
	input := "\xEF\xBB\xBF" +
		"id;equipment_name;equipment_code;description;power;weight;fuel_type;rental_price_day;status\n" +
		"1;Drill;EQ-001;cordless;0,9;2,5;electric;1000;available\n" +
		"2;Broken;EQ-002;;bad;1;electric;500;available\n" +
		"3;Saw;EQ-003;;1.2;4.0;petrol;500;available\n"

	var created []domain.Equipment
	result, err := ImportEquipment(context.Background(), strings.NewReader(input), func(_ context.Context, eq *domain.Equipment) error {
		created = append(created, *eq)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "line 3")

	require.Len(t, created, 2)
	assert.Equal(t, "Drill", created[0].Name)
	// Comma decimal separators are accepted.
	assert.True(t, created[0].Power.Equal(decimal.RequireFromString("0.9")))
	assert.True(t, created[1].RentalPriceDay.Equal(decimal.NewFromInt(500)))
}

func TestImportEquipment_MissingColumn(t *testing.T) {
	input := "equipment_name;equipment_code\nDrill;EQ-001\n"
	_, err := ImportEquipment(context.Background(), strings.NewReader(input), func(context.Context, *domain.Equipment) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImportClients(t *testing.T) {
	// No BOM on input is accepted too.
	input := "id;email;phone_number;type\n" +
		"1;ivan@test.com;+79990001122;individual\n"

	var created []domain.Client
	result, err := ImportClients(context.Background(), strings.NewReader(input), func(_ context.Context, c *domain.Client) error {
		created = append(created, *c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, created, 1)
	assert.Equal(t, "ivan@test.com", created[0].Email)
	assert.Equal(t, domain.ClientTypeIndividual, created[0].Type)
}
