package shop

import (
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// Orders controls the lifecycle of service orders. Get one from Store.Orders.
//
// Status is a free choice among the four schema statuses: an update may move
// an order to any of them, backwards included.
type Orders struct {
	s *Store
}

// OrderUpdate carries the new values for Orders.Update. Nil pointers keep the
// current entry date or status.
type OrderUpdate struct {
	Description string
	EntryDate   *string
	Status      *schema.Status
}

// Open creates an order for the vehicle with plate, in status
// AwaitingEvaluation, and rewrites the order file.
//
// The id is the number of orders currently stored plus one. After a deletion
// this can repeat the id of a deleted order, or of a live one when an order
// other than the last was deleted. Files written by earlier versions of the
// shop program use the same numbering.
//
// Fails with ErrVehicleNotFound, ErrInvalidDate or ErrInvalidField (a
// description containing ';' or a line break). Nothing is changed on failure.
func (r Orders) Open(plate, entryDate, description string) (schema.ServiceOrder, error) {
	if plate == "" || r.s.vehicleIndex(plate) < 0 {
		return schema.ServiceOrder{}, fmt.Errorf("vehicle %q: %w", plate, ErrVehicleNotFound)
	}
	if !validate.Date(entryDate) {
		return schema.ServiceOrder{}, fmt.Errorf("%q: %w", entryDate, ErrInvalidDate)
	}
	if !validate.FreeText(description) {
		return schema.ServiceOrder{}, &schema.FieldError{Field: "description", Value: description}
	}

	o := schema.ServiceOrder{
		ID:          len(r.s.orders) + 1,
		Plate:       plate,
		EntryDate:   entryDate,
		Description: description,
		Status:      schema.StatusAwaitingEvaluation,
	}
	r.s.orders = append(r.s.orders, o)
	r.s.logger.Debug("order opened", zap.Int("id", o.ID), zap.String("plate", plate))
	return o, r.s.saveOrders()
}

// Update applies upd to the first order with id and rewrites the order file.
// Every value is checked before any field changes.
func (r Orders) Update(id int, upd OrderUpdate) (schema.ServiceOrder, error) {
	i := r.s.orderIndex(id)
	if i < 0 {
		return schema.ServiceOrder{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if !validate.FreeText(upd.Description) {
		return schema.ServiceOrder{}, &schema.FieldError{Field: "description", Value: upd.Description}
	}
	if upd.EntryDate != nil && !validate.Date(*upd.EntryDate) {
		return schema.ServiceOrder{}, fmt.Errorf("%q: %w", *upd.EntryDate, ErrInvalidDate)
	}
	if upd.Status != nil && !upd.Status.IsValid() {
		return schema.ServiceOrder{}, fmt.Errorf("%s: %w", strconv.Itoa(int(*upd.Status)), ErrInvalidStatus)
	}

	o := &r.s.orders[i]
	o.Description = upd.Description
	if upd.EntryDate != nil {
		o.EntryDate = *upd.EntryDate
	}
	if upd.Status != nil {
		o.Status = *upd.Status
	}
	r.s.logger.Debug("order updated", zap.Int("id", id), zap.Stringer("status", o.Status))
	return *o, r.s.saveOrders()
}

// SetStatus moves the first order with id to status, keeping everything else.
func (r Orders) SetStatus(id int, status schema.Status) (schema.ServiceOrder, error) {
	o, ok := r.Find(id)
	if !ok {
		return schema.ServiceOrder{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return r.Update(id, OrderUpdate{Description: o.Description, Status: &status})
}

// Delete removes the first order with id and rewrites the order file.
func (r Orders) Delete(id int) error {
	i := r.s.orderIndex(id)
	if i < 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	r.s.orders = slices.Delete(r.s.orders, i, i+1)
	r.s.logger.Debug("order deleted", zap.Int("id", id))
	return r.s.saveOrders()
}

// List returns all orders in the order they were opened.
func (r Orders) List() []schema.ServiceOrder {
	return slices.Clone(r.s.orders)
}

// ListByStatus returns the orders currently in status.
func (r Orders) ListByStatus(status schema.Status) []schema.ServiceOrder {
	var out []schema.ServiceOrder
	for _, o := range r.s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// CountByStatus returns how many orders are in each status. Every valid
// status has an entry, zero included.
func (r Orders) CountByStatus() map[schema.Status]int {
	counts := make(map[schema.Status]int, len(schema.AllStatuses()))
	for _, st := range schema.AllStatuses() {
		counts[st] = 0
	}
	for _, o := range r.s.orders {
		counts[o.Status]++
	}
	return counts
}

// Find returns the first order with id.
func (r Orders) Find(id int) (schema.ServiceOrder, bool) {
	i := r.s.orderIndex(id)
	if i < 0 {
		return schema.ServiceOrder{}, false
	}
	return r.s.orders[i], true
}

// Vehicle resolves the vehicle of o, if it still exists.
func (r Orders) Vehicle(o schema.ServiceOrder) (schema.Vehicle, bool) {
	if !o.HasVehicle() {
		return schema.Vehicle{}, false
	}
	return r.s.Vehicles().FindByPlate(o.Plate)
}

// Count returns the number of stored orders.
func (r Orders) Count() int {
	return len(r.s.orders)
}
