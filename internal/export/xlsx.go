package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX workbook.
const (
	SheetClients  = "Clientes"
	SheetVehicles = "Veiculos"
	SheetOrders   = "Ordens"
)

// WriteXLSX writes snap as a workbook with one sheet per collection. Owner
// and vehicle columns show "Desconhecido" when the reference does not resolve.
func WriteXLSX(w io.Writer, snap *Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	owners := snap.ownerNames()
	plates := snap.plates()

	clientRows := make([][]any, 0, len(snap.Clients))
	for _, c := range snap.Clients {
		clientRows = append(clientRows, []any{c.Name, c.TaxID, c.Phone})
	}

	vehicleRows := make([][]any, 0, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		owner, ok := owners[v.OwnerTaxID]
		if !ok || !v.HasOwner() {
			owner = unknown
		}
		vehicleRows = append(vehicleRows, []any{v.Plate, v.Model, v.Year, v.OwnerTaxID, owner})
	}

	orderRows := make([][]any, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		plate := unknown
		if o.HasVehicle() && plates[o.Plate] {
			plate = o.Plate
		}
		orderRows = append(orderRows, []any{o.ID, plate, o.EntryDate, o.Description, int(o.Status), o.Status.Label()})
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{SheetClients, []string{"Nome", "CPF", "Telefone"}, clientRows},
		{SheetVehicles, []string{"Placa", "Modelo", "Ano", "CPF do dono", "Dono"}, vehicleRows},
		{SheetOrders, []string{"ID", "Veículo", "Data de entrada", "Descrição", "Status", "Situação"}, orderRows},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := fillSheet(f, sh.name, sh.headers, sh.rows, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

const unknown = "Desconhecido"

func fillSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
	return nil
}
