package engine

// RiskFactorSet holds the four exploitability signals observed for one
// project. The zero value means no evidence of risk: absent signals stay
// false rather than being guessed.
type RiskFactorSet struct {
	Deployed      bool `json:"deployed"`
	PublicFacing  bool `json:"public_facing"`
	LoadedPackage bool `json:"loaded_package"`
	OSCondition   bool `json:"os_condition"`
}

// RiskFactor is one named signal with its observed value, used for
// human-readable ticket output.
type RiskFactor struct {
	Name    string
	Present bool
}

// Merge combines two factor sets field-wise with OR. Risk observed on any
// dependency path counts for the whole project.
func (r RiskFactorSet) Merge(other RiskFactorSet) RiskFactorSet {
	return RiskFactorSet{
		Deployed:      r.Deployed || other.Deployed,
		PublicFacing:  r.PublicFacing || other.PublicFacing,
		LoadedPackage: r.LoadedPackage || other.LoadedPackage,
		OSCondition:   r.OSCondition || other.OSCondition,
	}
}

// Any reports whether at least one factor is set.
func (r RiskFactorSet) Any() bool {
	return r.Deployed || r.PublicFacing || r.LoadedPackage || r.OSCondition
}

// Summary returns the factors in a fixed display order.
func (r RiskFactorSet) Summary() []RiskFactor {
	return []RiskFactor{
		{Name: "Deployed", Present: r.Deployed},
		{Name: "Public-Facing", Present: r.PublicFacing},
		{Name: "Loaded Package", Present: r.LoadedPackage},
		{Name: "OS Condition", Present: r.OSCondition},
	}
}
