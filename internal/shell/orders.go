package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

// askDate repeats the question until the answer normalizes to a valid date.
// With allowEmpty, an empty answer returns "" to keep the current date.
func (s *Shell) askDate(ctx context.Context, label string, allowEmpty bool) (string, error) {
	for {
		answer, err := s.ask(ctx, label)
		if err != nil {
			return "", err
		}
		if allowEmpty && strings.TrimSpace(answer) == "" {
			return "", nil
		}
		if date, ok := NormalizeDate(answer, s.now()); ok {
			return date, nil
		}
		s.println(s.ui.Fail("Data inválida! Tente novamente."))
	}
}

func (s *Shell) openOrder(ctx context.Context) error {
	plate, err := s.ask(ctx, "Placa do veículo")
	if err != nil {
		return err
	}
	if _, ok := s.store.Vehicles().FindByPlate(plate); !ok {
		s.println(s.ui.Fail("Veículo não encontrado!"))
		return nil
	}

	date, err := s.askDate(ctx, "Data de entrada (dd/mm/aaaa)", false)
	if err != nil {
		return err
	}
	description, err := s.askUntil(ctx, "Descrição do problema", validate.FreeText, "Descrição não pode conter ';'.")
	if err != nil {
		return err
	}

	o, err := s.store.Orders().Open(plate, date, description)
	s.done(err, fmt.Sprintf("Ordem aberta! ID: %d", o.ID))
	return nil
}

var statusChoices = func() []Choice {
	choices := make([]Choice, 0, len(schema.AllStatuses()))
	for _, st := range schema.AllStatuses() {
		choices = append(choices, Choice{Key: int(st), Label: st.Label()})
	}
	return choices
}()

func (s *Shell) updateOrder(ctx context.Context) error {
	orders := s.store.Orders()

	id, err := s.askInt(ctx, "ID da ordem para editar")
	if err != nil {
		return err
	}
	current, ok := orders.Find(id)
	if !ok {
		s.println(s.ui.Fail("ID não encontrado."))
		return nil
	}

	var upd shop.OrderUpdate
	upd.Description, err = s.askUntil(ctx, "Nova descrição", validate.FreeText, "Descrição não pode conter ';'.")
	if err != nil {
		return err
	}

	date, err := s.askDate(ctx, fmt.Sprintf("Nova data de entrada (dd/mm/aaaa) ou ENTER para manter (%s)", current.EntryDate), true)
	if err != nil {
		return err
	}
	if date != "" {
		upd.EntryDate = &date
	}

	key, err := s.prompt.Choose(ctx, "Novo status:", statusChoices)
	switch {
	case errors.Is(err, ErrInvalidChoice):
		s.println(s.ui.Warn("Status inválido. Mantendo o anterior."))
	case err != nil:
		return err
	default:
		st := schema.Status(key)
		upd.Status = &st
	}

	_, err = orders.Update(id, upd)
	s.done(err, "Ordem atualizada!")
	return nil
}

func (s *Shell) deleteOrder(ctx context.Context) error {
	id, err := s.askInt(ctx, "ID para remover")
	if err != nil {
		return err
	}
	err = s.store.Orders().Delete(id)
	if err != nil && !shop.IsPersistenceError(err) {
		s.println(s.ui.Fail("ID não encontrado."))
		return nil
	}
	s.done(err, "Ordem removida!")
	return nil
}

func (s *Shell) listOrders() {
	s.println(s.ui.Title("--- ORDENS DE SERVIÇO ---"))
	s.println(s.ui.OrdersTable(s.store.Orders().List(), s.store.Orders()))
}
