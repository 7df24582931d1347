package models

// CapacityResult reports embedding capacity in bytes for each supported LSB
// depth. Warnings is not populated by the service's CalculateCapacity,
// which takes no depth or payload size; the 50%/80% density warnings from
// validate.CapacityPrecheck are returned on EncodeResult.Warnings instead.
type CapacityResult struct {
	OneLSB   int `json:"1_lsb"`
	TwoLSB   int `json:"2_lsb"`
	ThreeLSB int `json:"3_lsb"`
	FourLSB  int `json:"4_lsb"`

	Warnings []string `json:"warnings,omitempty"`
}

// ForDepth returns the capacity figure, in bytes, for the given LSB depth
// (1-4). It panics on an out-of-range depth; callers must validate depth
// with the validate package first.
func (c *CapacityResult) ForDepth(depth int) int {
	switch depth {
	case 1:
		return c.OneLSB
	case 2:
		return c.TwoLSB
	case 3:
		return c.ThreeLSB
	case 4:
		return c.FourLSB
	default:
		panic("models: capacity requested for out-of-range LSB depth")
	}
}
