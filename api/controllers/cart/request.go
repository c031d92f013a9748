package cart

import (
	cartdto "github.com/angelmondragon/bestprice-backend/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/bestprice-backend/internal/cart"
)

// Defaults fill the optional quantities of an add request.
type Defaults struct {
	Qty      int
	PriceQty int
}

func toAddItemsInput(payload cartdto.AddItemsRequest, defaults Defaults) cartsvc.AddItemsInput {
	qty := defaults.Qty
	if payload.Qty != nil {
		qty = *payload.Qty
	}
	priceQty := defaults.PriceQty
	if payload.PriceQty != nil {
		priceQty = *payload.PriceQty
	}
	return cartsvc.AddItemsInput{
		ItemIDs:  payload.ItemIDs,
		Qty:      qty,
		PriceQty: priceQty,
		Lines:    payload.Lines,
	}
}
