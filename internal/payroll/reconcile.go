package payroll

// EnsureMonthRecords guarantees records[month] holds one entry per
// roster employee. Existing entries are preserved unchanged; missing
// ones are created as unpaid with no proofs. Pure and idempotent:
// applying it twice equals applying it once.
func EnsureMonthRecords(s State, month string) State {
	out := s.Clone()

	if out.Records == nil {
		out.Records = make(map[string]map[string]PaymentRecord)
	}

	monthRecs := out.Records[month]
	if monthRecs == nil {
		monthRecs = make(map[string]PaymentRecord, len(out.Employees))
	}

	for _, e := range out.Employees {
		if _, ok := monthRecs[e.ID]; !ok {
			monthRecs[e.ID] = emptyRecord()
		}
	}

	out.Records[month] = monthRecs
	return out
}
