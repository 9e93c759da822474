package magnitudes

// MassUnit selects the unit of a mass value.
type MassUnit int

const (
	UnitKilograms MassUnit = iota
	UnitGrams
	UnitTonnes
)

// Mass is stored in kilograms.
type Mass struct {
	kg float64
}

func Kilograms(kg float64) Mass { return Mass{kg: kg} }
func Grams(g float64) Mass      { return Mass{kg: g / 1000} }
func Tonnes(t float64) Mass     { return Mass{kg: t * 1000} }

// NewMass builds a mass from a value expressed in unit.
func NewMass(value float64, unit MassUnit) Mass {
	switch unit {
	case UnitGrams:
		return Grams(value)
	case UnitTonnes:
		return Tonnes(value)
	default:
		return Kilograms(value)
	}
}

func (m Mass) InKilograms() float64 { return m.kg }
func (m Mass) InGrams() float64     { return m.kg * 1000 }
func (m Mass) InTonnes() float64    { return m.kg / 1000 }

func (m *Mass) SetKilograms(kg float64) { m.kg = kg }
func (m *Mass) SetGrams(g float64)      { m.kg = g / 1000 }
func (m *Mass) SetTonnes(t float64)     { m.kg = t * 1000 }
