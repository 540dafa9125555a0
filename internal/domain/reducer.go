package domain

// Action is the closed set of cart transitions. The marker method seals the
// set to this package.
type Action interface {
	isAction()
}

// AddItem merges the quantity into an existing line for the same product, or
// appends a new line. Non-positive quantities leave the state unchanged.
type AddItem struct {
	Product  Product
	Quantity int
}

// RemoveItem drops the line with the matching product id, if present.
type RemoveItem struct {
	ProductID ProductID
}

// UpdateQuantity sets an absolute quantity. Zero or below removes the line.
type UpdateQuantity struct {
	ProductID ProductID
	Quantity  int
}

// ApplyPromo sets the applied promo, replacing any previous one.
type ApplyPromo struct {
	Promo PromoCode
}

// RemovePromo clears the applied promo.
type RemovePromo struct{}

// ClearCart resets to the canonical empty state.
type ClearCart struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ApplyPromo) isAction()     {}
func (RemovePromo) isAction()    {}
func (ClearCart) isAction()      {}

// Reduce applies a single transition and returns the next state. It is a
// total function: every action on every state yields a valid state, and the
// input state is never mutated.
func Reduce(state CartState, action Action) CartState {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a.Product, a.Quantity)
	case RemoveItem:
		return removeItem(state, a.ProductID)
	case UpdateQuantity:
		if a.Quantity <= 0 {
			return removeItem(state, a.ProductID)
		}
		return setQuantity(state, a.ProductID, a.Quantity)
	case ApplyPromo:
		next := state.Clone()
		promo := a.Promo
		next.Promo = &promo
		return next
	case RemovePromo:
		next := state.Clone()
		next.Promo = nil
		return next
	case ClearCart:
		return EmptyCart()
	default:
		return state
	}
}

func addItem(state CartState, product Product, quantity int) CartState {
	if quantity <= 0 {
		return state
	}
	next := state.Clone()
	for i := range next.Items {
		if next.Items[i].Product.ID == product.ID {
			next.Items[i].Quantity += quantity
			return next
		}
	}
	next.Items = append(next.Items, LineItem{Product: product, Quantity: quantity})
	return next
}

func removeItem(state CartState, id ProductID) CartState {
	next := state.Clone()
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.Product.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		next.Items = nil
		return next
	}
	next.Items = kept
	return next
}

func setQuantity(state CartState, id ProductID, quantity int) CartState {
	next := state.Clone()
	for i := range next.Items {
		if next.Items[i].Product.ID == id {
			next.Items[i].Quantity = quantity
			break
		}
	}
	return next
}
