package shop

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// Vehicles is the vehicle repository. Get one from Store.Vehicles.
type Vehicles struct {
	s *Store
}

// Register adds a vehicle owned by the client with ownerTaxID and rewrites the
// vehicle file.
//
// Fails with ErrInvalidField, ErrDuplicateKey when plate is taken, or
// ErrOwnerNotFound when no client has ownerTaxID. Nothing is changed or
// written on failure.
func (r Vehicles) Register(plate, model string, year int, ownerTaxID string) (schema.Vehicle, error) {
	v := schema.Vehicle{Plate: plate, Model: model, Year: year, OwnerTaxID: ownerTaxID}
	if err := v.Validate(); err != nil {
		return schema.Vehicle{}, err
	}
	if r.s.vehicleIndex(plate) >= 0 {
		return schema.Vehicle{}, fmt.Errorf("vehicle %s: %w", plate, ErrDuplicateKey)
	}
	if ownerTaxID == "" || r.s.clientIndex(ownerTaxID) < 0 {
		return schema.Vehicle{}, fmt.Errorf("client %q: %w", ownerTaxID, ErrOwnerNotFound)
	}

	r.s.vehicles = append(r.s.vehicles, v)
	r.s.logger.Debug("vehicle registered", zap.String("plate", plate), zap.String("owner_tax_id", ownerTaxID))
	return v, r.s.saveVehicles()
}

// Update replaces the model and year of the vehicle with plate. Plate and
// owner are left as they are.
func (r Vehicles) Update(plate, newModel string, newYear int) (schema.Vehicle, error) {
	i := r.s.vehicleIndex(plate)
	if i < 0 {
		return schema.Vehicle{}, fmt.Errorf("vehicle %s: %w", plate, ErrNotFound)
	}
	if !validate.FreeText(newModel) {
		return schema.Vehicle{}, &schema.FieldError{Field: "model", Value: newModel}
	}

	r.s.vehicles[i].Model = newModel
	r.s.vehicles[i].Year = newYear
	r.s.logger.Debug("vehicle updated", zap.String("plate", plate))
	return r.s.vehicles[i], r.s.saveVehicles()
}

// Delete removes the vehicle with plate. Orders opened for it are kept with
// their plate cleared, and the order file is rewritten when any changed.
func (r Vehicles) Delete(plate string) error {
	i := r.s.vehicleIndex(plate)
	if i < 0 {
		return fmt.Errorf("vehicle %s: %w", plate, ErrNotFound)
	}

	r.s.vehicles = slices.Delete(r.s.vehicles, i, i+1)
	saveErr := r.s.saveVehicles()

	var cascadeErr error
	if n := r.s.detachVehicle(plate); n > 0 {
		r.s.logger.Debug("cleared vehicle on orders", zap.String("plate", plate), zap.Int("orders", n))
		cascadeErr = r.s.saveOrders()
	}

	r.s.logger.Debug("vehicle deleted", zap.String("plate", plate))
	return joinSaves(saveErr, cascadeErr)
}

// List returns all vehicles in registration order.
func (r Vehicles) List() []schema.Vehicle {
	return slices.Clone(r.s.vehicles)
}

// ListByOwner returns the vehicles whose owner is taxID.
func (r Vehicles) ListByOwner(taxID string) []schema.Vehicle {
	var out []schema.Vehicle
	for _, v := range r.s.vehicles {
		if v.OwnerTaxID == taxID {
			out = append(out, v)
		}
	}
	return out
}

// FindByPlate returns the vehicle with plate.
func (r Vehicles) FindByPlate(plate string) (schema.Vehicle, bool) {
	i := r.s.vehicleIndex(plate)
	if i < 0 {
		return schema.Vehicle{}, false
	}
	return r.s.vehicles[i], true
}

// Owner resolves the owner of v, if it still exists.
func (r Vehicles) Owner(v schema.Vehicle) (schema.Client, bool) {
	if !v.HasOwner() {
		return schema.Client{}, false
	}
	return r.s.Clients().FindByTaxID(v.OwnerTaxID)
}

// Count returns the number of registered vehicles.
func (r Vehicles) Count() int {
	return len(r.s.vehicles)
}
