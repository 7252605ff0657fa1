package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// OrdersFile is the file name of the service order collection inside the data dir.
const OrdersFile = "ordens.txt"

// ServiceOrder is a repair job opened against a vehicle.
type ServiceOrder struct {
	ID int `json:"id" yaml:"id"`

	// Plate refers to a Vehicle. Empty once that vehicle is deleted.
	Plate string `json:"plate,omitempty" yaml:"plate,omitempty"`

	EntryDate   string `json:"entry_date" yaml:"entry_date"` // dd/mm/yyyy
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

// HasVehicle reports whether the order still points at a vehicle.
func (o *ServiceOrder) HasVehicle() bool {
	return o.Plate != ""
}

// Validate checks the fields that end up in the order file.
func (o *ServiceOrder) Validate() error {
	if !validate.Date(o.EntryDate) {
		return &FieldError{Field: "entry date", Value: o.EntryDate}
	}
	if !validate.FreeText(o.Description) {
		return &FieldError{Field: "description", Value: o.Description}
	}
	if !validate.FreeText(o.Plate) {
		return &FieldError{Field: "plate", Value: o.Plate}
	}
	if !o.Status.IsValid() {
		return &FieldError{Field: "status", Value: strconv.Itoa(int(o.Status))}
	}
	return nil
}

// Line formats the order as id;plate;entryDate;description;statusNumber.
func (o *ServiceOrder) Line() string {
	return strings.Join([]string{
		strconv.Itoa(o.ID),
		o.Plate,
		o.EntryDate,
		o.Description,
		strconv.Itoa(int(o.Status)),
	}, Separator)
}

// ParseOrderLine is the inverse of ServiceOrder.Line.
func ParseOrderLine(line string) (ServiceOrder, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != 5 {
		return ServiceOrder{}, fmt.Errorf("expected 5 fields id;plate;entryDate;description;status, got %d", len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return ServiceOrder{}, fmt.Errorf("invalid id %q: %w", fields[0], err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return ServiceOrder{}, fmt.Errorf("invalid status %q: %w", fields[4], err)
	}
	status := Status(n)
	if !status.IsValid() {
		return ServiceOrder{}, fmt.Errorf("status must be between 1 and 4 (got %d)", n)
	}

	return ServiceOrder{
		ID:          id,
		Plate:       fields[1],
		EntryDate:   fields[2],
		Description: fields[3],
		Status:      status,
	}, nil
}

// ReadOrders loads the order file at path.
// Unparseable lines are skipped and returned as line errors.
func ReadOrders(path string) ([]ServiceOrder, []*LineError, error) {
	return readRecords(path, ParseOrderLine, nil)
}

// WriteOrders replaces the order file at path with orders.
func WriteOrders(path string, orders []ServiceOrder) error {
	return writeRecords(path, orders, (*ServiceOrder).Line)
}
