package payroll

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var csvHeader = []string{"Name", "Department", "Salary", "Status", "Payment Date", "Proofs"}

// ExportCSV renders one row per employee for the selected month. It is
// a pure projection of existing data and carries no extra invariants.
func ExportCSV(s State) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	records := s.Records[s.SelectedMonth]
	for _, e := range s.Employees {
		rec := records[e.ID]

		status := "Pending"
		if rec.Paid {
			status = "Paid"
		}

		row := []string{
			e.Name,
			e.Department,
			strconv.FormatFloat(e.Salary, 'f', -1, 64),
			status,
			rec.PaymentDate,
			strconv.Itoa(len(rec.Proofs)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
