package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name    string
		client  Client
		wantErr bool
		field   string
	}{
		{
			name:   "valid client",
			client: Client{Name: "Ana Silva", TaxID: "111.111.111-11", Phone: "(11) 99999-0000"},
		},
		{
			name:   "empty name is accepted",
			client: Client{Name: "", TaxID: "1", Phone: "1"},
		},
		{
			name:    "missing tax id",
			client:  Client{Name: "Ana", Phone: "1"},
			wantErr: true,
			field:   "tax id",
		},
		{
			name:    "tax id with letters",
			client:  Client{Name: "Ana", TaxID: "abc", Phone: "1"},
			wantErr: true,
			field:   "tax id",
		},
		{
			name:    "name with digits",
			client:  Client{Name: "Ana 2", TaxID: "1", Phone: "1"},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "phone with letters",
			client:  Client{Name: "Ana", TaxID: "1", Phone: "call me"},
			wantErr: true,
			field:   "phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidField))
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestVehicle_Validate(t *testing.T) {
	ok := Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015, OwnerTaxID: "111.111.111-11"}
	assert.NoError(t, ok.Validate())

	noOwner := Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015}
	assert.NoError(t, noOwner.Validate())

	badPlate := Vehicle{Model: "Gol", Year: 2015}
	assert.ErrorIs(t, badPlate.Validate(), ErrInvalidField)

	badModel := Vehicle{Plate: "ABC1234", Model: "Gol;1.0", Year: 2015}
	assert.ErrorIs(t, badModel.Validate(), ErrInvalidField)
}

func TestServiceOrder_Validate(t *testing.T) {
	ok := ServiceOrder{ID: 1, Plate: "ABC1234", EntryDate: "10/05/2024", Description: "brake noise", Status: StatusAwaitingEvaluation}
	assert.NoError(t, ok.Validate())

	badDate := ok
	badDate.EntryDate = "31/04/2020"
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidField)

	badStatus := ok
	badStatus.Status = 9
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidField)
}

func TestLineFormats(t *testing.T) {
	c := Client{Name: "Ana Silva", TaxID: "111.111.111-11", Phone: "(11) 99999-0000"}
	assert.Equal(t, "Ana Silva;111.111.111-11;(11) 99999-0000", c.Line())

	v := Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015, OwnerTaxID: "111.111.111-11"}
	assert.Equal(t, "ABC1234;Gol;2015;111.111.111-11", v.Line())

	orphan := Vehicle{Plate: "XYZ9876", Model: "Uno", Year: 2009}
	assert.Equal(t, "XYZ9876;Uno;2009;", orphan.Line())

	o := ServiceOrder{ID: 3, Plate: "ABC1234", EntryDate: "10/05/2024", Description: "brake noise", Status: StatusInRepair}
	assert.Equal(t, "3;ABC1234;10/05/2024;brake noise;2", o.Line())

	detached := ServiceOrder{ID: 4, EntryDate: "11/05/2024", Description: "oil", Status: StatusDelivered}
	assert.Equal(t, "4;;11/05/2024;oil;4", detached.Line())
}

func TestParseVehicleLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Vehicle
		wantErr bool
	}{
		{name: "with owner", line: "ABC1234;Gol;2015;111", want: Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015, OwnerTaxID: "111"}},
		{name: "empty owner", line: "ABC1234;Gol;2015;", want: Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015}},
		{name: "legacy doubled separator", line: "ABC1234;Gol;2015;;", want: Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015}},
		{name: "owner field missing", line: "ABC1234;Gol;2015", want: Vehicle{Plate: "ABC1234", Model: "Gol", Year: 2015}},
		{name: "bad year", line: "ABC1234;Gol;new;111", wantErr: true},
		{name: "no plate", line: ";Gol;2015;111", wantErr: true},
		{name: "too few fields", line: "ABC1234;Gol", wantErr: true},
		{name: "trailing data", line: "ABC1234;Gol;2015;111;x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVehicleLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderLine(t *testing.T) {
	got, err := ParseOrderLine("2;;11/05/2024;oil change;4")
	require.NoError(t, err)
	assert.Equal(t, ServiceOrder{ID: 2, EntryDate: "11/05/2024", Description: "oil change", Status: StatusDelivered}, got)

	_, err = ParseOrderLine("2;ABC;11/05/2024;oil change;7")
	assert.Error(t, err, "status outside 1..4")

	_, err = ParseOrderLine("x;ABC;11/05/2024;oil change;1")
	assert.Error(t, err, "non numeric id")

	_, err = ParseOrderLine("2;ABC;11/05/2024;oil;change;1")
	assert.Error(t, err, "extra separator in description")
}

func TestParseClientLine(t *testing.T) {
	got, err := ParseClientLine("Ana Silva;111.111.111-11;(11) 99999-0000")
	require.NoError(t, err)
	assert.Equal(t, Client{Name: "Ana Silva", TaxID: "111.111.111-11", Phone: "(11) 99999-0000"}, got)

	_, err = ParseClientLine("Ana Silva;111.111.111-11")
	assert.Error(t, err)

	_, err = ParseClientLine("Ana Silva;;123")
	assert.Error(t, err)
}

func TestReadWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	clients := []Client{
		{Name: "Ana Silva", TaxID: "111.111.111-11", Phone: "(11) 99999-0000"},
		{Name: "José Araújo", TaxID: "222.222.222-22", Phone: "21 5555-1234"},
	}
	vehicles := []Vehicle{
		{Plate: "ABC1234", Model: "Gol", Year: 2015, OwnerTaxID: "111.111.111-11"},
		{Plate: "XYZ9876", Model: "Uno Mille", Year: 2009},
	}
	orders := []ServiceOrder{
		{ID: 1, Plate: "ABC1234", EntryDate: "10/05/2024", Description: "brake noise", Status: StatusInRepair},
		{ID: 2, EntryDate: "11/05/2024", Description: "oil change", Status: StatusDelivered},
	}

	require.NoError(t, WriteClients(filepath.Join(dir, ClientsFile), clients))
	require.NoError(t, WriteVehicles(filepath.Join(dir, VehiclesFile), vehicles))
	require.NoError(t, WriteOrders(filepath.Join(dir, OrdersFile), orders))

	gotClients, skipped, err := ReadClients(filepath.Join(dir, ClientsFile))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(clients, gotClients); diff != "" {
		t.Errorf("clients mismatch (-want +got):\n%s", diff)
	}

	gotVehicles, skipped, err := ReadVehicles(filepath.Join(dir, VehiclesFile))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(vehicles, gotVehicles); diff != "" {
		t.Errorf("vehicles mismatch (-want +got):\n%s", diff)
	}

	gotOrders, skipped, err := ReadOrders(filepath.Join(dir, OrdersFile))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(orders, gotOrders); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	clients, skipped, err := ReadClients(filepath.Join(t.TempDir(), ClientsFile))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.NotNil(t, clients)
	assert.Len(t, clients, 0)
}

func TestReadRecords_SkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), OrdersFile)
	content := "1;ABC1234;10/05/2024;brake noise;1\r\n" +
		"\n" +
		"garbage\n" +
		"2;ABC1234;11/05/2024;tires;3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	orders, skipped, err := ReadOrders(path)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "brake noise", orders[0].Description)
	assert.Equal(t, StatusFinalized, orders[1].Status)

	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
	assert.Contains(t, skipped[0].Error(), path)
}

func TestReadRecords_FirstKeyWins(t *testing.T) {
	dir := t.TempDir()
	clientsPath := filepath.Join(dir, ClientsFile)
	require.NoError(t, os.WriteFile(clientsPath, []byte("Ana;111;1\nBia;111;2\n"), 0644))
	vehiclesPath := filepath.Join(dir, VehiclesFile)
	require.NoError(t, os.WriteFile(vehiclesPath, []byte("ABC1234;Gol;2015;111\n\nABC1234;Uno;2009;\n"), 0644))

	clients, skipped, err := ReadClients(clientsPath)
	require.NoError(t, err)
	assert.Equal(t, []Client{{Name: "Ana", TaxID: "111", Phone: "1"}}, clients)
	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Line)
	assert.ErrorIs(t, skipped[0], ErrDuplicateKey)
	assert.Contains(t, skipped[0].Error(), "already on line 1")

	vehicles, skipped, err := ReadVehicles(vehiclesPath)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Gol", vehicles[0].Model)
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
	assert.ErrorIs(t, skipped[0], ErrDuplicateKey)
}

func TestWriteRecords_EmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), ClientsFile)
	require.NoError(t, os.WriteFile(path, []byte("old;1;2\n"), 0644))

	require.NoError(t, WriteClients(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, []Status{1, 2, 3, 4}, AllStatuses())
	assert.Equal(t, "InRepair", StatusInRepair.String())
	assert.Equal(t, "Aguardando Avaliação", StatusAwaitingEvaluation.Label())
	assert.Equal(t, "Desconhecido", Status(0).Label())
	assert.False(t, Status(5).IsValid())

	for _, in := range []string{"2", "InRepair", "in_repair", "in-repair", "Em Reparo", " em reparo "} {
		s, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, StatusInRepair, s, in)
	}

	_, err := ParseStatus("0")
	assert.Error(t, err)
	_, err = ParseStatus("broken")
	assert.Error(t, err)

	text, err := StatusDelivered.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Delivered", string(text))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("Finalized")))
	assert.Equal(t, StatusFinalized, s)
}
