package order

import "fmt"

// MissingSelectionError reports a mandatory element left without a choice.
type MissingSelectionError struct {
	ElementCmpID int64
	ElementName  string
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("order: no option selected for element %q (id %d)", e.ElementName, e.ElementCmpID)
}

// InvalidSelectionError reports a chosen option that does not belong to the
// element it was supplied for.
type InvalidSelectionError struct {
	ElementCmpID int64
	OptionCmpID  int64
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("order: option %d does not belong to element %d", e.OptionCmpID, e.ElementCmpID)
}

// OutOfStockError reports a product line asking for more units than stocked.
type OutOfStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("order: product %d has %d units in stock, %d requested", e.ProductID, e.Available, e.Requested)
}
