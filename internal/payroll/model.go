package payroll

import (
	"regexp"
	"time"
)

const (
	// MonthKeyLayout is the canonical YYYY-MM payroll period key.
	MonthKeyLayout = "2006-01"
	// DateLayout is the YYYY-MM-DD payment date format.
	DateLayout = "2006-01-02"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

// ProofRef is proof-of-payment metadata. The binary content lives in the
// attachment store under the same ID.
type ProofRef struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	UploadedAt string `json:"uploadedAt"` // RFC3339
}

type PaymentRecord struct {
	Paid        bool       `json:"paid"`
	PaymentDate string     `json:"paymentDate"` // YYYY-MM-DD, empty when unset
	Proofs      []ProofRef `json:"proofs"`
}

// State is the root aggregate: the full roster plus every month's
// records. One instance per identity, persisted as a whole.
type State struct {
	SelectedMonth string                              `json:"selectedMonth"`
	Employees     []Employee                          `json:"employees"`
	Records       map[string]map[string]PaymentRecord `json:"records"`
}

func CurrentMonthKey(now time.Time) string {
	return now.Format(MonthKeyLayout)
}

func ValidMonthKey(key string) bool {
	return monthKeyPattern.MatchString(key)
}

func emptyRecord() PaymentRecord {
	return PaymentRecord{
		Paid:        false,
		PaymentDate: "",
		Proofs:      []ProofRef{},
	}
}

func (r PaymentRecord) clone() PaymentRecord {
	out := r
	if r.Proofs != nil {
		out.Proofs = make([]ProofRef, len(r.Proofs))
		copy(out.Proofs, r.Proofs)
	}
	return out
}

// Clone deep-copies the state so mutation operations can stay pure.
func (s State) Clone() State {
	out := s
	if s.Employees != nil {
		out.Employees = make([]Employee, len(s.Employees))
		copy(out.Employees, s.Employees)
	}
	if s.Records != nil {
		out.Records = make(map[string]map[string]PaymentRecord, len(s.Records))
		for month, recs := range s.Records {
			cloned := make(map[string]PaymentRecord, len(recs))
			for id, rec := range recs {
				cloned[id] = rec.clone()
			}
			out.Records[month] = cloned
		}
	}
	return out
}

// EmployeeByID looks up a roster entry. The roster is small, so a
// linear scan beats maintaining an index.
func (s State) EmployeeByID(id string) (Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// FindProof returns the ProofRef with the given id from any month.
func (s State) FindProof(proofID string) (ProofRef, bool) {
	for _, recs := range s.Records {
		for _, rec := range recs {
			for _, p := range rec.Proofs {
				if p.ID == proofID {
					return p, true
				}
			}
		}
	}
	return ProofRef{}, false
}
