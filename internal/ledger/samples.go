package ledger

import "foodstreet/internal/core"

// SampleRecords is the fixed set a brand-new ledger starts with, so a
// first run has something to show on the dashboard.
func SampleRecords() []core.Record {
	return []core.Record{
		{
			ID: "Shop 1", Name: "Frozen Cups", Owner: "Mr. Arun",
			Address: "123 Anna Salai", Advance: "2L", BaseRent: "23k",
			Rent:        core.Charge{Amount: "23000", Status: core.Paid},
			Generator:   core.Charge{Amount: "1480", Status: core.Paid},
			Electricity: core.Charge{Amount: "0", Status: core.NotApplicable},
			RoomRent:    core.Charge{Amount: "5000", Status: core.Paid},
		},
		{
			ID: "Shop 2", Name: "Yum Sandwich", Owner: "Ms. Priya",
			Address: "456 OMR", Advance: "1.5L", BaseRent: "18k",
			Rent:        core.Charge{Amount: "18000", Status: core.Paid},
			Generator:   core.Charge{Amount: "930", Status: core.Pending},
			Electricity: core.Charge{Amount: "450", Status: core.Paid},
			RoomRent:    core.Charge{Amount: "0", Status: core.NotApplicable},
		},
		{
			ID: "Shop 3", Name: "Irani Chai", Owner: "Mr. Kumar",
			Address: "789 ECR", Advance: "1.75L", BaseRent: "21k",
			Rent:        core.Charge{Amount: "21000", Status: core.Pending},
			Generator:   core.Charge{Amount: "1480", Status: core.Pending},
			Electricity: core.Charge{Amount: "550", Status: core.Paid},
			RoomRent:    core.Charge{Amount: "4500", Status: core.Pending},
		},
	}
}
