package club

import "fmt"

// Club is the canonical identity every observed name variant resolves to.
type Club struct {
	ID               int64
	Name             string
	FoundedYear      *int
	StadiumName      string
	City             string
	Country          string
	AlternativeNames []string
}

func (c Club) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if c.FoundedYear != nil && (*c.FoundedYear < 1800 || *c.FoundedYear > 2100) {
		return fmt.Errorf("club founded year %d is out of range", *c.FoundedYear)
	}

	return nil
}

// HasAlias reports whether name is one of the club's known variants.
func (c Club) HasAlias(name string) bool {
	for _, alias := range c.AlternativeNames {
		if alias == name {
			return true
		}
	}
	return false
}
