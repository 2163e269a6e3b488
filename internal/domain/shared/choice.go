package shared

// Choice is one member of a closed enumeration together with its display label
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
