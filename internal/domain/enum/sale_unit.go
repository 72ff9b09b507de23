package enum

// SaleUnit is the unit kind a cart line is sold in.
type SaleUnit string

const (
	SaleUnitUnit SaleUnit = "unit" // loose units
	SaleUnitBox  SaleUnit = "box"  // whole boxes
)

// IsValid checks whether the sale unit is a known kind.
func (u SaleUnit) IsValid() bool {
	return u == SaleUnitUnit || u == SaleUnitBox
}

// Abbrev returns the receipt abbreviation for the unit kind (es-CO labels).
func (u SaleUnit) Abbrev() string {
	if u == SaleUnitBox {
		return "caja"
	}
	return "und"
}

// SaleMode governs which sale-unit kinds a product may be sold in.
type SaleMode string

const (
	SaleModeUnit SaleMode = "unit"
	SaleModeBox  SaleMode = "box"
	SaleModeBoth SaleMode = "both"
)

// IsValid checks whether the sale mode is a known mode.
func (m SaleMode) IsValid() bool {
	return m == SaleModeUnit || m == SaleModeBox || m == SaleModeBoth
}

// Permits reports whether the mode allows selling in the given unit kind.
func (m SaleMode) Permits(u SaleUnit) bool {
	switch m {
	case SaleModeBoth:
		return u.IsValid()
	case SaleModeUnit:
		return u == SaleUnitUnit
	case SaleModeBox:
		return u == SaleUnitBox
	default:
		return false
	}
}
