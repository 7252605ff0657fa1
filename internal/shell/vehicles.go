package shell

import (
	"context"
	"fmt"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

func (s *Shell) registerVehicle(ctx context.Context) error {
	vehicles := s.store.Vehicles()

	var plate string
	for {
		answer, err := s.ask(ctx, "Placa")
		if err != nil {
			return err
		}
		if !validate.Plate(answer) {
			s.println(s.ui.Fail("Placa inválida!"))
			continue
		}
		if _, exists := vehicles.FindByPlate(answer); exists {
			s.println(s.ui.Fail("Já existe veículo com essa placa!"))
			continue
		}
		plate = answer
		break
	}

	model, err := s.askUntil(ctx, "Modelo", validate.FreeText, "Modelo inválido!")
	if err != nil {
		return err
	}
	year, err := s.askInt(ctx, "Ano")
	if err != nil {
		return err
	}
	owner, err := s.ask(ctx, "CPF do dono")
	if err != nil {
		return err
	}

	_, err = vehicles.Register(plate, model, year, owner)
	s.done(err, "Veículo cadastrado!")
	return nil
}

func (s *Shell) updateVehicle(ctx context.Context) error {
	vehicles := s.store.Vehicles()

	plate, err := s.ask(ctx, "Placa do veículo para editar")
	if err != nil {
		return err
	}
	if _, ok := vehicles.FindByPlate(plate); !ok {
		s.println(s.ui.Fail("Placa não encontrada."))
		return nil
	}

	model, err := s.askUntil(ctx, "Novo modelo", validate.FreeText, "Modelo inválido!")
	if err != nil {
		return err
	}
	year, err := s.askInt(ctx, "Novo ano")
	if err != nil {
		return err
	}

	_, err = vehicles.Update(plate, model, year)
	s.done(err, "Veículo atualizado!")
	return nil
}

func (s *Shell) deleteVehicle(ctx context.Context) error {
	plate, err := s.ask(ctx, "Placa para remover")
	if err != nil {
		return err
	}
	if _, ok := s.store.Vehicles().FindByPlate(plate); !ok {
		s.println(s.ui.Fail("Placa não encontrada."))
		return nil
	}

	affected := 0
	for _, o := range s.store.Orders().List() {
		if o.Plate == plate {
			affected++
		}
	}

	err = s.store.Vehicles().Delete(plate)
	s.done(err, "Veículo removido!")
	if affected > 0 {
		s.println(s.ui.Muted(fmt.Sprintf("%d ordem(ns) ficaram sem veículo.", affected)))
	}
	return nil
}

func (s *Shell) listVehicles() {
	s.println(s.ui.Title("--- LISTA DE VEÍCULOS ---"))
	s.println(s.ui.VehiclesTable(s.store.Vehicles().List(), s.store.Vehicles()))
}
