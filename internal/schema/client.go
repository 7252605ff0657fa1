package schema

import (
	"fmt"
	"strings"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// ClientsFile is the file name of the client collection inside the data dir.
const ClientsFile = "clientes.txt"

// Client is a shop customer. TaxID is the natural key and never changes once
// the client is registered.
type Client struct {
	Name  string `json:"name" yaml:"name"`
	TaxID string `json:"tax_id" yaml:"tax_id"`
	Phone string `json:"phone" yaml:"phone"`
}

// Validate checks every field against its syntax rule. The tax id is the
// record key, so unlike the other fields it may not be empty.
func (c *Client) Validate() error {
	if c.TaxID == "" || !validate.TaxID(c.TaxID) {
		return &FieldError{Field: "tax id", Value: c.TaxID}
	}
	if !validate.Name(c.Name) {
		return &FieldError{Field: "name", Value: c.Name}
	}
	if !validate.Phone(c.Phone) {
		return &FieldError{Field: "phone", Value: c.Phone}
	}
	return nil
}

// Line formats the client as name;taxId;phone.
func (c *Client) Line() string {
	return strings.Join([]string{c.Name, c.TaxID, c.Phone}, Separator)
}

// ParseClientLine is the inverse of Client.Line.
func ParseClientLine(line string) (Client, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != 3 {
		return Client{}, fmt.Errorf("expected 3 fields name;taxId;phone, got %d", len(fields))
	}
	if fields[1] == "" {
		return Client{}, fmt.Errorf("tax id is required")
	}
	return Client{Name: fields[0], TaxID: fields[1], Phone: fields[2]}, nil
}

// ReadClients loads the client file at path.
// Unparseable lines and repeated keys are skipped and returned as line errors.
func ReadClients(path string) ([]Client, []*LineError, error) {
	return readRecords(path, ParseClientLine, func(c *Client) string { return c.TaxID })
}

// WriteClients replaces the client file at path with clients.
func WriteClients(path string, clients []Client) error {
	return writeRecords(path, clients, (*Client).Line)
}
