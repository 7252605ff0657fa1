package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// VehiclesFile is the file name of the vehicle collection inside the data dir.
const VehiclesFile = "veiculos.txt"

// Vehicle is a car registered at the shop. Plate is the natural key and never
// changes once the vehicle is registered.
type Vehicle struct {
	Plate string `json:"plate" yaml:"plate"`
	Model string `json:"model" yaml:"model"`
	Year  int    `json:"year" yaml:"year"`

	// OwnerTaxID refers to a Client. Empty when the owner was deleted or could
	// not be resolved on load.
	OwnerTaxID string `json:"owner_tax_id,omitempty" yaml:"owner_tax_id,omitempty"`
}

// HasOwner reports whether the vehicle still points at a client.
func (v *Vehicle) HasOwner() bool {
	return v.OwnerTaxID != ""
}

// Validate checks the plate and model. The owner reference is checked by
// looking the client up, not by syntax.
func (v *Vehicle) Validate() error {
	if !validate.Plate(v.Plate) {
		return &FieldError{Field: "plate", Value: v.Plate}
	}
	if !validate.FreeText(v.Model) {
		return &FieldError{Field: "model", Value: v.Model}
	}
	return nil
}

// Line formats the vehicle as plate;model;year;ownerTaxId.
func (v *Vehicle) Line() string {
	return strings.Join([]string{v.Plate, v.Model, strconv.Itoa(v.Year), v.OwnerTaxID}, Separator)
}

// ParseVehicleLine is the inverse of Vehicle.Line. It also accepts lines
// without the owner field and the legacy "plate;model;year;;" form.
func ParseVehicleLine(line string) (Vehicle, error) {
	fields := strings.Split(line, Separator)
	switch {
	case len(fields) < 3 || len(fields) > 5:
		return Vehicle{}, fmt.Errorf("expected 4 fields plate;model;year;ownerTaxId, got %d", len(fields))
	case len(fields) == 5 && fields[4] != "":
		return Vehicle{}, fmt.Errorf("unexpected trailing field %q", fields[4])
	case fields[0] == "":
		return Vehicle{}, fmt.Errorf("plate is required")
	}

	year, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Vehicle{}, fmt.Errorf("invalid year %q: %w", fields[2], err)
	}

	v := Vehicle{Plate: fields[0], Model: fields[1], Year: year}
	if len(fields) >= 4 {
		v.OwnerTaxID = fields[3]
	}
	return v, nil
}

// ReadVehicles loads the vehicle file at path.
// Unparseable lines and repeated keys are skipped and returned as line errors.
func ReadVehicles(path string) ([]Vehicle, []*LineError, error) {
	return readRecords(path, ParseVehicleLine, func(v *Vehicle) string { return v.Plate })
}

// WriteVehicles replaces the vehicle file at path with vehicles.
func WriteVehicles(path string, vehicles []Vehicle) error {
	return writeRecords(path, vehicles, (*Vehicle).Line)
}
