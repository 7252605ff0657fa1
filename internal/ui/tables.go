package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// OwnerResolver looks up the owner of a vehicle. shop.Vehicles implements it.
type OwnerResolver interface {
	Owner(v schema.Vehicle) (schema.Client, bool)
}

// VehicleResolver looks up the vehicle of an order. shop.Orders implements it.
type VehicleResolver interface {
	Vehicle(o schema.ServiceOrder) (schema.Vehicle, bool)
}

func (r *Renderer) table(headers ...string) *table.Table {
	header := r.lg.NewStyle().Foreground(ColorAccent).Bold(true).Padding(0, 1)
	cell := r.lg.NewStyle().Foreground(ColorDefault).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.lg.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// ClientsTable lists clients with their position in registration order.
func (r *Renderer) ClientsTable(clients []schema.Client) string {
	if len(clients) == 0 {
		return r.Muted("Nenhum cliente cadastrado.")
	}
	t := r.table("#", "Nome", "CPF", "Telefone")
	for i, c := range clients {
		t.Row(strconv.Itoa(i+1), c.Name, c.TaxID, c.Phone)
	}
	return t.Render()
}

// VehiclesTable lists vehicles and the name of their owner, or Unknown when
// the owner is gone.
func (r *Renderer) VehiclesTable(vehicles []schema.Vehicle, owners OwnerResolver) string {
	if len(vehicles) == 0 {
		return r.Muted("Nenhum veículo cadastrado.")
	}
	t := r.table("#", "Placa", "Modelo", "Ano", "Dono")
	for i, v := range vehicles {
		owner := Unknown
		if c, ok := owners.Owner(v); ok {
			owner = c.Name
		}
		t.Row(strconv.Itoa(i+1), v.Plate, v.Model, strconv.Itoa(v.Year), owner)
	}
	return t.Render()
}

// OrdersTable lists service orders with the plate of their vehicle, or
// Unknown when the vehicle is gone.
func (r *Renderer) OrdersTable(orders []schema.ServiceOrder, vehicles VehicleResolver) string {
	if len(orders) == 0 {
		return r.Muted("Nenhuma ordem de serviço.")
	}
	t := r.table("ID", "Veículo", "Data", "Status", "Problema")
	for _, o := range orders {
		plate := Unknown
		if v, ok := vehicles.Vehicle(o); ok {
			plate = v.Plate
		}
		t.Row(strconv.Itoa(o.ID), plate, o.EntryDate, r.Status(o.Status), o.Description)
	}
	return t.Render()
}

// Summary renders record counts and the number of orders in each status.
func (r *Renderer) Summary(clients, vehicles int, byStatus map[schema.Status]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", r.Accent("Clientes:"), clients)
	fmt.Fprintf(&b, "%s %d\n", r.Accent("Veículos:"), vehicles)

	t := r.table("Status", "Ordens")
	total := 0
	for _, st := range schema.AllStatuses() {
		t.Row(r.Status(st), strconv.Itoa(byStatus[st]))
		total += byStatus[st]
	}
	t.Row("Total", strconv.Itoa(total))
	b.WriteString(t.Render())
	return b.String()
}
