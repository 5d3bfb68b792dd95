package reservation

// Plan is a fixed bundle of laps, time limit and price offered at booking.
type Plan struct {
	ID           string
	Laps         int
	MaxMinutes   int
	Price        int64
	TotalMinutes int
}

// plans is the venue's fixed plan catalogue.
var plans = []Plan{
	{ID: "10", Laps: 10, MaxMinutes: 10, Price: 15000, TotalMinutes: 30},
	{ID: "15", Laps: 15, MaxMinutes: 15, Price: 20000, TotalMinutes: 35},
	{ID: "20", Laps: 20, MaxMinutes: 20, Price: 25000, TotalMinutes: 40},
}

// Plans returns a copy of the plan catalogue.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a plan.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
