package payroll

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	payrollerrors "github.com/adamstrass/payroll-dashboard/internal/payroll/errors"

	"github.com/google/uuid"
)

// Every mutation is a pure transform (state, args) -> state'. Each one
// runs the reconciler first, so the target record is guaranteed to
// exist before being read or updated.

// AddEmployee appends a roster entry with a fresh id. Name and
// department must be non-empty after trimming, salary finite and >= 0;
// the state is returned untouched on validation failure.
func AddEmployee(s State, name, department string, salary float64) (State, Employee, error) {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)

	if name == "" || department == "" {
		return s, Employee{}, payrollerrors.ErrInvalidEmployeeInput
	}
	if math.IsNaN(salary) || math.IsInf(salary, 0) || salary < 0 {
		return s, Employee{}, payrollerrors.ErrInvalidEmployeeInput
	}

	emp := Employee{
		ID:         uuid.NewString(),
		Name:       name,
		Department: department,
		Salary:     salary,
	}

	out := s.Clone()
	out.Employees = append(out.Employees, emp)
	return EnsureMonthRecords(out, out.SelectedMonth), emp, nil
}

// SetSelectedMonth switches the active payroll period. An empty or
// malformed key falls back to the current calendar month.
func SetSelectedMonth(s State, month string, now time.Time) State {
	month = strings.TrimSpace(month)
	if !ValidMonthKey(month) {
		month = CurrentMonthKey(now)
	}

	out := s.Clone()
	out.SelectedMonth = month
	return EnsureMonthRecords(out, month)
}

// SetPaid toggles the paid flag for the selected month. Transitioning
// to paid with no payment date stamps today.
func SetPaid(s State, employeeID string, paid bool, now time.Time) (State, error) {
	out := EnsureMonthRecords(s, s.SelectedMonth)

	if _, ok := out.EmployeeByID(employeeID); !ok {
		return s, payrollerrors.ErrEmployeeNotFound
	}

	rec := out.Records[out.SelectedMonth][employeeID]
	rec.Paid = paid
	if paid && rec.PaymentDate == "" {
		rec.PaymentDate = now.Format(DateLayout)
	}
	out.Records[out.SelectedMonth][employeeID] = rec

	return out, nil
}

// SetPaymentDate overwrites the payment date unconditionally.
func SetPaymentDate(s State, employeeID, date string) (State, error) {
	out := EnsureMonthRecords(s, s.SelectedMonth)

	if _, ok := out.EmployeeByID(employeeID); !ok {
		return s, payrollerrors.ErrEmployeeNotFound
	}

	rec := out.Records[out.SelectedMonth][employeeID]
	rec.PaymentDate = date
	out.Records[out.SelectedMonth][employeeID] = rec

	return out, nil
}

// MarkAllPaid marks every current-month record paid. Payment dates are
// stamped only where still empty, so re-running never overwrites them.
func MarkAllPaid(s State, now time.Time) State {
	out := EnsureMonthRecords(s, s.SelectedMonth)
	today := now.Format(DateLayout)

	for _, e := range out.Employees {
		rec := out.Records[out.SelectedMonth][e.ID]
		rec.Paid = true
		if rec.PaymentDate == "" {
			rec.PaymentDate = today
		}
		out.Records[out.SelectedMonth][e.ID] = rec
	}

	return out
}

// AttachProofRef appends proof metadata to the employee's current-month
// record. The blob itself is stored separately by the caller.
func AttachProofRef(s State, employeeID string, ref ProofRef) (State, error) {
	out := EnsureMonthRecords(s, s.SelectedMonth)

	if _, ok := out.EmployeeByID(employeeID); !ok {
		return s, payrollerrors.ErrEmployeeNotFound
	}

	rec := out.Records[out.SelectedMonth][employeeID]
	rec.Proofs = append(rec.Proofs, ref)
	out.Records[out.SelectedMonth][employeeID] = rec

	return out, nil
}

// RemoveProofRef drops proof metadata from the employee's current-month
// record and returns the removed ref so the caller can delete the blob.
func RemoveProofRef(s State, employeeID, proofID string) (State, ProofRef, error) {
	out := EnsureMonthRecords(s, s.SelectedMonth)

	if _, ok := out.EmployeeByID(employeeID); !ok {
		return s, ProofRef{}, payrollerrors.ErrEmployeeNotFound
	}

	rec := out.Records[out.SelectedMonth][employeeID]
	for i, p := range rec.Proofs {
		if p.ID == proofID {
			rec.Proofs = append(rec.Proofs[:i], rec.Proofs[i+1:]...)
			out.Records[out.SelectedMonth][employeeID] = rec
			return out, p, nil
		}
	}

	return s, ProofRef{}, payrollerrors.ErrProofNotFound
}

// IsPDFUpload is the proof gate: accepted when either the declared MIME
// type is application/pdf or the file name carries a .pdf suffix.
func IsPDFUpload(fileName, contentType string) bool {
	if strings.EqualFold(strings.TrimSpace(contentType), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}
