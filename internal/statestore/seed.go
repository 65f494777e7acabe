package statestore

import (
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/payroll"

	"github.com/google/uuid"
)

type starterEmployee struct {
	name       string
	department string
	salary     float64
}

// A never-seen identity starts with a small roster instead of an
// empty screen.
var starterRoster = []starterEmployee{
	{"Sarah Chen", "Engineering", 7200},
	{"Marcus Webb", "Design", 5400},
	{"Priya Patel", "Operations", 6100},
}

// SeedState builds the initial state for a fresh identity: the starter
// roster, the current calendar month selected and fully reconciled.
func SeedState(now time.Time) payroll.State {
	state := payroll.State{
		SelectedMonth: payroll.CurrentMonthKey(now),
		Employees:     make([]payroll.Employee, 0, len(starterRoster)),
		Records:       make(map[string]map[string]payroll.PaymentRecord),
	}

	for _, e := range starterRoster {
		state.Employees = append(state.Employees, payroll.Employee{
			ID:         uuid.NewString(),
			Name:       e.name,
			Department: e.department,
			Salary:     e.salary,
		})
	}

	return payroll.EnsureMonthRecords(state, state.SelectedMonth)
}
