package payroll

import "sort"

// RecentActivityLimit caps the activity feed at the most recent uploads.
const RecentActivityLimit = 20

type ProofActivity struct {
	EmployeeID   string   `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Proof        ProofRef `json:"proof"`
}

type Summary struct {
	TotalEmployees int             `json:"totalEmployees"`
	PaidCount      int             `json:"paidCount"`
	PendingCount   int             `json:"pendingCount"`
	TotalPayroll   float64         `json:"totalPayroll"`
	PaidPayroll    float64         `json:"paidPayroll"`
	MissingProofs  int             `json:"missingProofs"`
	RecentActivity []ProofActivity `json:"recentActivity"`
}

// Summarize recomputes the dashboard metrics for one month from
// scratch. An employee without a record counts as pending. MissingProofs
// flags paid records with no attachment, a data-quality signal only.
func Summarize(employees []Employee, records map[string]PaymentRecord) Summary {
	summary := Summary{
		TotalEmployees: len(employees),
		RecentActivity: []ProofActivity{},
	}

	for _, e := range employees {
		summary.TotalPayroll += e.Salary

		rec, ok := records[e.ID]
		if !ok {
			continue
		}

		if rec.Paid {
			summary.PaidCount++
			summary.PaidPayroll += e.Salary
			if len(rec.Proofs) == 0 {
				summary.MissingProofs++
			}
		}

		for _, p := range rec.Proofs {
			summary.RecentActivity = append(summary.RecentActivity, ProofActivity{
				EmployeeID:   e.ID,
				EmployeeName: e.Name,
				Proof:        p,
			})
		}
	}

	summary.PendingCount = summary.TotalEmployees - summary.PaidCount

	// RFC3339 timestamps order lexicographically; stable sort keeps
	// roster order on ties.
	sort.SliceStable(summary.RecentActivity, func(i, j int) bool {
		return summary.RecentActivity[i].Proof.UploadedAt > summary.RecentActivity[j].Proof.UploadedAt
	})
	if len(summary.RecentActivity) > RecentActivityLimit {
		summary.RecentActivity = summary.RecentActivity[:RecentActivityLimit]
	}

	return summary
}
