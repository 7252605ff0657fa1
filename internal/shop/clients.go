package shop

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Clients is the client repository. The zero value is not usable; get one
// from Store.Clients.
type Clients struct {
	s *Store
}

// Register adds a client and rewrites the client file.
//
// Fails with ErrInvalidField when a field does not pass its syntax check and
// with ErrDuplicateKey when taxID is already registered. Nothing is changed on
// failure.
func (r Clients) Register(name, taxID, phone string) (schema.Client, error) {
	c := schema.Client{Name: name, TaxID: taxID, Phone: phone}
	if err := c.Validate(); err != nil {
		return schema.Client{}, err
	}
	if r.s.clientIndex(taxID) >= 0 {
		return schema.Client{}, fmt.Errorf("client %s: %w", taxID, ErrDuplicateKey)
	}

	r.s.clients = append(r.s.clients, c)
	r.s.logger.Debug("client registered", zap.String("tax_id", taxID))
	return c, r.s.saveClients()
}

// Update replaces the name and phone of the client with taxID. The tax id
// itself cannot change.
func (r Clients) Update(taxID, newName, newPhone string) (schema.Client, error) {
	i := r.s.clientIndex(taxID)
	if i < 0 {
		return schema.Client{}, fmt.Errorf("client %s: %w", taxID, ErrNotFound)
	}

	updated := r.s.clients[i]
	updated.Name = newName
	updated.Phone = newPhone
	if err := updated.Validate(); err != nil {
		return schema.Client{}, err
	}

	r.s.clients[i] = updated
	r.s.logger.Debug("client updated", zap.String("tax_id", taxID))
	return updated, r.s.saveClients()
}

// Delete removes the client with taxID. Vehicles it owned are kept with their
// owner cleared, and the vehicle file is rewritten when any changed.
func (r Clients) Delete(taxID string) error {
	i := r.s.clientIndex(taxID)
	if i < 0 {
		return fmt.Errorf("client %s: %w", taxID, ErrNotFound)
	}

	r.s.clients = slices.Delete(r.s.clients, i, i+1)
	saveErr := r.s.saveClients()

	var cascadeErr error
	if n := r.s.detachOwner(taxID); n > 0 {
		r.s.logger.Debug("cleared owner on vehicles", zap.String("tax_id", taxID), zap.Int("vehicles", n))
		cascadeErr = r.s.saveVehicles()
	}

	r.s.logger.Debug("client deleted", zap.String("tax_id", taxID))
	return joinSaves(saveErr, cascadeErr)
}

// List returns all clients in registration order.
func (r Clients) List() []schema.Client {
	return slices.Clone(r.s.clients)
}

// FindByTaxID returns the client with taxID.
func (r Clients) FindByTaxID(taxID string) (schema.Client, bool) {
	i := r.s.clientIndex(taxID)
	if i < 0 {
		return schema.Client{}, false
	}
	return r.s.clients[i], true
}

// Count returns the number of registered clients.
func (r Clients) Count() int {
	return len(r.s.clients)
}
