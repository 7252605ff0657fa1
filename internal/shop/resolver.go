package shop

import (
	"go.uber.org/zap"
)

// Reference resolution between collections.
//
// Vehicles hold their owner's tax id and orders hold their vehicle's plate.
// Lookups are linear scans; collections stay in the tens to hundreds of
// records.

func (s *Store) clientIndex(taxID string) int {
	for i := range s.clients {
		if s.clients[i].TaxID == taxID {
			return i
		}
	}
	return -1
}

func (s *Store) vehicleIndex(plate string) int {
	for i := range s.vehicles {
		if s.vehicles[i].Plate == plate {
			return i
		}
	}
	return -1
}

// orderIndex returns the first order with id. Ids can repeat after deletions
// (see Orders.Open), in which case later duplicates are unreachable by id.
func (s *Store) orderIndex(id int) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// link clears references that point at records absent after a load.
func (s *Store) link(report *LoadReport) {
	for i := range s.vehicles {
		v := &s.vehicles[i]
		if v.OwnerTaxID == "" || s.clientIndex(v.OwnerTaxID) >= 0 {
			continue
		}
		s.logger.Warn("vehicle owner not found, clearing reference",
			zap.String("plate", v.Plate), zap.String("owner_tax_id", v.OwnerTaxID))
		v.OwnerTaxID = ""
		report.OrphanedVehicles = append(report.OrphanedVehicles, v.Plate)
	}

	for i := range s.orders {
		o := &s.orders[i]
		if o.Plate == "" || s.vehicleIndex(o.Plate) >= 0 {
			continue
		}
		s.logger.Warn("order vehicle not found, clearing reference",
			zap.Int("order_id", o.ID), zap.String("plate", o.Plate))
		o.Plate = ""
		report.DetachedOrders = append(report.DetachedOrders, o.ID)
	}
}

// detachOwner clears the owner of every vehicle owned by taxID and reports
// how many vehicles changed.
func (s *Store) detachOwner(taxID string) int {
	n := 0
	for i := range s.vehicles {
		if s.vehicles[i].OwnerTaxID == taxID {
			s.vehicles[i].OwnerTaxID = ""
			n++
		}
	}
	return n
}

// detachVehicle clears the plate of every order opened for plate and reports
// how many orders changed.
func (s *Store) detachVehicle(plate string) int {
	n := 0
	for i := range s.orders {
		if s.orders[i].Plate == plate {
			s.orders[i].Plate = ""
			n++
		}
	}
	return n
}
