package request

type AllocationTargetRequest struct {
	Symbol    string  `json:"symbol"`
	TargetPct float64 `json:"targetPct"`
	Anchored  bool    `json:"anchored"`
	Locked    bool    `json:"locked"`
}

type SaveAllocationPlanRequest struct {
	Targets []AllocationTargetRequest `json:"targets"`
}

type SimulateAllocationRequest struct {
	Targets map[string]float64 `json:"targets"`
}
