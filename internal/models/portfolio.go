package models

// Portfolio is a named grouping of positions.
type Portfolio struct {
	named
}

// NewPortfolio creates a validated Portfolio.
func NewPortfolio(id int64, name string) (*Portfolio, error) {
	n, err := newNamed(id, name)
	if err != nil {
		return nil, err
	}
	return &Portfolio{named: n}, nil
}

func (*Portfolio) Kind() Kind { return KindPortfolio }
