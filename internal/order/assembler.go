package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// Request is a customer order: quantities of regular products plus fully
// specified configurations, a shipping address and the quoted shipment fee.
type Request struct {
	Products    []ProductLine
	Cmps        []CmpLine
	Address     string
	ShipmentFee float64
}

// ProductLine asks for a quantity of one regular product.
type ProductLine struct {
	ProductID int64
	Quantity  int64
}

// CmpLine asks for one configuration of a configurable category, mapping
// ElementCmp id to the chosen OptionCmp id.
type CmpLine struct {
	CategoryID int64
	Selections map[int64]int64
}

// Assembler validates and prices whole orders, then commits them atomically.
type Assembler struct {
	products store.ProductStorer
	resolver *Resolver
	txRunner store.OrderTxRunner
}

// NewAssembler creates an Assembler.
func NewAssembler(products store.ProductStorer, resolver *Resolver, txRunner store.OrderTxRunner) *Assembler {
	return &Assembler{products: products, resolver: resolver, txRunner: txRunner}
}

// Assemble validates every line and computes the authoritative grand total.
// It fails fast on the first violated contract and applies no effects: no
// stock moves, nothing is persisted. A negative shipment fee is treated as
// zero.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*domain.Order, error) {
	order := &domain.Order{
		Number:  uuid.NewString(),
		Address: req.Address,
	}
	if req.ShipmentFee > 0 {
		order.ShipmentFee = req.ShipmentFee
	}

	for _, line := range req.Products {
		product, err := a.products.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Quantity > product.Quantity {
			return nil, &OutOfStockError{
				ProductID: product.ID,
				Requested: line.Quantity,
				Available: product.Quantity,
			}
		}
		subtotal := product.Value * float64(line.Quantity)
		order.Products = append(order.Products, domain.OrderProductLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitValue: product.Value,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		order.Total += subtotal
	}

	for _, line := range req.Cmps {
		resolved, err := a.resolver.Resolve(ctx, line.CategoryID, line.Selections)
		if err != nil {
			return nil, err
		}
		order.Configurations = append(order.Configurations, domain.OrderCmpLine{
			CategoryID: resolved.CategoryID,
			Subtotal:   resolved.TotalDelta,
			Choices:    resolved.Chosen,
		})
		order.Total += resolved.TotalDelta
	}

	order.Total += order.ShipmentFee
	return order, nil
}

// Place assembles the order and, only on full success, commits its effects
// in one transaction: every product line's stock is decremented exactly
// once per unit ordered (guarded against oversell) and the order record is
// persisted. Any failure rolls the whole commit back.
func (a *Assembler) Place(ctx context.Context, req Request) (*domain.Order, error) {
	order, err := a.Assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	var placed *domain.Order
	err = a.txRunner.RunOrderTx(ctx, func(tx store.OrderTx) error {
		for _, line := range order.Products {
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		var err error
		placed, err = tx.InsertOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}
