package enum

// PriceEditing tags which field of a price track was edited last, so the
// other one is always the derived value. Explicit instead of inferred from
// UI event order: toggling between editing price and editing margin must
// never create a circular overwrite.
type PriceEditing string

const (
	EditingNone   PriceEditing = "none"
	EditingPrice  PriceEditing = "price"
	EditingMargin PriceEditing = "margin"
)

// IsValid checks whether the tag is a known value.
func (e PriceEditing) IsValid() bool {
	return e == EditingNone || e == EditingPrice || e == EditingMargin
}
