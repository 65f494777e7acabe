package payroll_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/adamstrass/payroll-dashboard/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestExportCSV(t *testing.T) {
	a := testEmployee("Avery", 6800)
	b := testEmployee("Blake", 5200.50)
	state := rosterState("2024-01", a, b)
	state.Records["2024-01"] = map[string]payroll.PaymentRecord{
		a.ID: {
			Paid:        true,
			PaymentDate: "2024-01-10",
			Proofs:      []payroll.ProofRef{{ID: "p1"}, {ID: "p2"}},
		},
	}

	out, err := payroll.ExportCSV(state)
	assert.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	assert.NoError(t, err)

	assert.Len(t, rows, 3, "header plus one row per employee")
	assert.Equal(t, []string{"Name", "Department", "Salary", "Status", "Payment Date", "Proofs"}, rows[0])
	assert.Equal(t, []string{"Avery", "Engineering", "6800", "Paid", "2024-01-10", "2"}, rows[1])
	assert.Equal(t, []string{"Blake", "Engineering", "5200.5", "Pending", "", "0"}, rows[2])
}

func TestExportCSV_EmptyRoster(t *testing.T) {
	out, err := payroll.ExportCSV(rosterState("2024-01"))

	assert.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
