package shell

import (
	"context"
	"fmt"

	"github.com/micaelyMelo/OficinaMecanica/internal/validate"
)

func (s *Shell) registerClient(ctx context.Context) error {
	clients := s.store.Clients()

	var taxID string
	for {
		answer, err := s.ask(ctx, "CPF (ex: 123.456.789-00)")
		if err != nil {
			return err
		}
		if answer == "" || !validate.TaxID(answer) {
			s.println(s.ui.Fail("CPF inválido!"))
			continue
		}
		if _, exists := clients.FindByTaxID(answer); exists {
			s.println(s.ui.Fail("Já existe cliente com esse CPF!"))
			continue
		}
		taxID = answer
		break
	}

	name, err := s.askUntil(ctx, "Nome", validate.Name, "Nome inválido!")
	if err != nil {
		return err
	}
	phone, err := s.askUntil(ctx, "Telefone", validate.Phone, "Telefone inválido!")
	if err != nil {
		return err
	}

	_, err = clients.Register(name, taxID, phone)
	s.done(err, "Cliente cadastrado!")
	return nil
}

func (s *Shell) updateClient(ctx context.Context) error {
	clients := s.store.Clients()

	taxID, err := s.ask(ctx, "CPF do cliente para editar")
	if err != nil {
		return err
	}
	if _, ok := clients.FindByTaxID(taxID); !ok {
		s.println(s.ui.Fail("CPF não encontrado."))
		return nil
	}

	name, err := s.askUntil(ctx, "Novo nome", validate.Name, "Nome inválido!")
	if err != nil {
		return err
	}
	phone, err := s.askUntil(ctx, "Novo telefone", validate.Phone, "Telefone inválido!")
	if err != nil {
		return err
	}

	_, err = clients.Update(taxID, name, phone)
	s.done(err, "Cliente atualizado!")
	return nil
}

func (s *Shell) deleteClient(ctx context.Context) error {
	taxID, err := s.ask(ctx, "CPF para remover")
	if err != nil {
		return err
	}
	if _, ok := s.store.Clients().FindByTaxID(taxID); !ok {
		s.println(s.ui.Fail("CPF não encontrado."))
		return nil
	}

	owned := s.store.Vehicles().ListByOwner(taxID)
	err = s.store.Clients().Delete(taxID)
	s.done(err, "Cliente removido!")
	if len(owned) > 0 {
		s.println(s.ui.Muted(fmt.Sprintf("%d veículo(s) ficaram sem dono.", len(owned))))
	}
	return nil
}

func (s *Shell) listClients() {
	s.println(s.ui.Title("--- LISTA DE CLIENTES ---"))
	s.println(s.ui.ClientsTable(s.store.Clients().List()))
}
