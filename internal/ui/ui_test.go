package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

type owners map[string]schema.Client

func (o owners) Owner(v schema.Vehicle) (schema.Client, bool) {
	c, ok := o[v.OwnerTaxID]
	return c, ok
}

type vehicles map[string]schema.Vehicle

func (m vehicles) Vehicle(o schema.ServiceOrder) (schema.Vehicle, bool) {
	v, ok := m[o.Plate]
	return v, ok
}

func plain(t *testing.T) *Renderer {
	t.Helper()
	return New(&bytes.Buffer{}, false)
}

func TestRenderer_NoColor(t *testing.T) {
	r := plain(t)
	assert.False(t, r.Colored())
	assert.Equal(t, "ok", r.Pass("ok"))
	assert.Equal(t, "Em Reparo", r.Status(schema.StatusInRepair))
	assert.Equal(t, "Desconhecido", r.Status(schema.Status(9)))
}

func TestRenderer_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := New(&bytes.Buffer{}, true)
	assert.False(t, r.Colored())
}

func TestClientsTable(t *testing.T) {
	r := plain(t)
	out := r.ClientsTable([]schema.Client{
		{Name: "Ana Silva", TaxID: "111.111.111-11", Phone: "(11) 99999-0000"},
		{Name: "Bruno Souza", TaxID: "222", Phone: ""},
	})

	for _, want := range []string{"Nome", "CPF", "Ana Silva", "111.111.111-11", "(11) 99999-0000", "Bruno Souza"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "Ana Silva"), strings.Index(out, "Bruno Souza"))

	assert.Equal(t, "Nenhum cliente cadastrado.", r.ClientsTable(nil))
}

func TestVehiclesTable_UnknownOwner(t *testing.T) {
	r := plain(t)
	out := r.VehiclesTable([]schema.Vehicle{
		{Plate: "ABC1234", Model: "Gol", Year: 2015, OwnerTaxID: "111"},
		{Plate: "XYZ9876", Model: "Uno", Year: 2009},
	}, owners{"111": {Name: "Ana Silva", TaxID: "111"}})

	assert.Contains(t, out, "Ana Silva")
	assert.Contains(t, out, "2015")
	assert.Contains(t, out, Unknown)
}

func TestOrdersTable(t *testing.T) {
	r := plain(t)
	out := r.OrdersTable([]schema.ServiceOrder{
		{ID: 1, Plate: "ABC1234", EntryDate: "10/05/2024", Description: "brake noise", Status: schema.StatusInRepair},
		{ID: 2, EntryDate: "11/05/2024", Description: "oil change", Status: schema.StatusDelivered},
	}, vehicles{"ABC1234": {Plate: "ABC1234"}})

	for _, want := range []string{"ABC1234", "10/05/2024", "Em Reparo", "brake noise", "Entregue", Unknown} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, "Nenhuma ordem de serviço.", r.OrdersTable(nil, vehicles{}))
}

func TestSummary(t *testing.T) {
	r := plain(t)
	out := r.Summary(2, 3, map[schema.Status]int{
		schema.StatusAwaitingEvaluation: 1,
		schema.StatusDelivered:          2,
	})
	assert.Contains(t, out, "Clientes: 2")
	assert.Contains(t, out, "Veículos: 3")
	assert.Contains(t, out, "Aguardando Avaliação")
	assert.Contains(t, out, "Total")
}
