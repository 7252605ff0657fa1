// Package shell runs the interactive numbered menu of oficina.
//
// The shell owns every prompt, retry loop and message shown to shop staff.
// The shop core returns on the first error; the shell decides whether to ask
// again, cancel the operation or just report it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
	"github.com/micaelyMelo/OficinaMecanica/internal/ui"
	"github.com/micaelyMelo/OficinaMecanica/internal/watch"
)

// Menu options.
const (
	OptExit = iota
	OptRegisterClient
	OptUpdateClient
	OptDeleteClient
	OptListClients
	OptRegisterVehicle
	OptUpdateVehicle
	OptDeleteVehicle
	OptListVehicles
	OptOpenOrder
	OptUpdateOrder
	OptDeleteOrder
	OptListOrders
)

var menu = []Choice{
	{OptRegisterClient, "Cadastrar Cliente"},
	{OptUpdateClient, "Atualizar Cliente"},
	{OptDeleteClient, "Remover Cliente"},
	{OptListClients, "Listar Clientes"},
	{OptRegisterVehicle, "Cadastrar Veículo"},
	{OptUpdateVehicle, "Atualizar Veículo"},
	{OptDeleteVehicle, "Remover Veículo"},
	{OptListVehicles, "Listar Veículos"},
	{OptOpenOrder, "Abrir Ordem"},
	{OptUpdateOrder, "Atualizar Ordem"},
	{OptDeleteOrder, "Remover Ordem"},
	{OptListOrders, "Listar Ordens"},
	{OptExit, "Sair"},
}

// Changes reports collection files changed by other processes.
// *watch.Watcher implements it.
type Changes interface {
	Drain() []watch.Event
}

// Shell is one interactive session over a store.
type Shell struct {
	store   *shop.Store
	prompt  Prompter
	out     io.Writer
	ui      *ui.Renderer
	logger  *zap.Logger
	changes Changes
	now     func() time.Time
}

// Option configures a Shell.
type Option func(*Shell)

// WithChanges makes the shell reload the store between operations when
// changes reports that another process touched the data dir.
func WithChanges(c Changes) Option {
	return func(s *Shell) { s.changes = c }
}

// WithLogger sets the logger. The default, and a nil l, discard everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l == nil {
			l = zap.NewNop()
		}
		s.logger = l.Named("shell")
	}
}

// WithClock replaces time.Now for casual date input.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// New creates a shell that reads answers from prompt and writes everything
// else to out through r.
func New(store *shop.Store, prompt Prompter, out io.Writer, r *ui.Renderer, opts ...Option) *Shell {
	s := &Shell{
		store:  store,
		prompt: prompt,
		out:    out,
		ui:     r,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user picks Sair, input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.reloadIfChanged()

		s.println(s.ui.Title("===== OFICINA MECÂNICA ====="))
		opt, err := s.prompt.Choose(ctx, "", menu)
		switch {
		case errors.Is(err, ErrInvalidChoice):
			s.println(s.ui.Fail("Opção inválida!"))
			continue
		case errors.Is(err, ErrQuit):
			s.println("Encerrando...")
			return nil
		case err != nil:
			return err
		}

		if opt == OptExit {
			s.println("Encerrando...")
			return nil
		}
		if err := s.dispatch(ctx, opt); err != nil {
			if errors.Is(err, ErrQuit) {
				s.println("Encerrando...")
				return nil
			}
			return err
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, opt int) error {
	switch opt {
	case OptRegisterClient:
		return s.registerClient(ctx)
	case OptUpdateClient:
		return s.updateClient(ctx)
	case OptDeleteClient:
		return s.deleteClient(ctx)
	case OptListClients:
		s.listClients()
	case OptRegisterVehicle:
		return s.registerVehicle(ctx)
	case OptUpdateVehicle:
		return s.updateVehicle(ctx)
	case OptDeleteVehicle:
		return s.deleteVehicle(ctx)
	case OptListVehicles:
		s.listVehicles()
	case OptOpenOrder:
		return s.openOrder(ctx)
	case OptUpdateOrder:
		return s.updateOrder(ctx)
	case OptDeleteOrder:
		return s.deleteOrder(ctx)
	case OptListOrders:
		s.listOrders()
	default:
		s.println(s.ui.Fail("Opção inválida!"))
	}
	return nil
}

// reloadIfChanged reloads the store when another process saved a collection
// file since the last operation.
func (s *Shell) reloadIfChanged() {
	if s.changes == nil {
		return
	}
	events := s.changes.Drain()
	if len(events) == 0 || !s.store.Stale() {
		return
	}

	s.logger.Info("data dir changed on disk, reloading", zap.Int("events", len(events)))
	report := s.store.Load()
	s.println(s.ui.Warn("Dados alterados por outro processo foram recarregados."))
	s.printLoadReport(report)
}

// PrintLoadReport shows what loading the data dir skipped or repaired.
func (s *Shell) PrintLoadReport(report *shop.LoadReport) {
	s.printLoadReport(report)
}

func (s *Shell) printLoadReport(report *shop.LoadReport) {
	if report == nil || report.Clean() {
		return
	}
	for name, err := range report.Failed {
		s.println(s.ui.Warn(fmt.Sprintf("Não foi possível ler %s: %v", name, err)))
	}
	for _, le := range report.Skipped {
		s.println(s.ui.Warn(fmt.Sprintf("Linha ignorada: %v", le)))
	}
	for _, plate := range report.OrphanedVehicles {
		s.println(s.ui.Warn(fmt.Sprintf("Veículo %s sem dono cadastrado.", plate)))
	}
	for _, id := range report.DetachedOrders {
		s.println(s.ui.Warn(fmt.Sprintf("Ordem %d sem veículo cadastrado.", id)))
	}
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) ask(ctx context.Context, label string) (string, error) {
	return s.prompt.Ask(ctx, label)
}

// askUntil repeats the question until valid accepts the answer.
func (s *Shell) askUntil(ctx context.Context, label string, valid func(string) bool, invalidMsg string) (string, error) {
	for {
		answer, err := s.ask(ctx, label)
		if err != nil {
			return "", err
		}
		if valid(answer) {
			return answer, nil
		}
		s.println(s.ui.Fail(invalidMsg))
	}
}

// askInt repeats the question until the answer is an integer.
func (s *Shell) askInt(ctx context.Context, label string) (int, error) {
	for {
		answer, err := s.ask(ctx, label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil {
			return n, nil
		}
		s.println(s.ui.Fail("Digite um número."))
	}
}

// done reports the outcome of a mutation. A persistence failure still counts
// as done: the change is in memory, only the file is behind.
func (s *Shell) done(err error, success string) {
	switch {
	case err == nil:
		s.println(s.ui.Pass(success))
	case shop.IsPersistenceError(err):
		s.println(s.ui.Pass(success))
		s.println(s.ui.Warn(fmt.Sprintf("Aviso: alteração não foi salva em disco: %v", err)))
	default:
		s.println(s.ui.Fail(describe(err)))
	}
}

// describe turns a shop error into a message for shop staff.
func describe(err error) string {
	switch {
	case errors.Is(err, shop.ErrDuplicateKey):
		return "Registro já existe."
	case errors.Is(err, shop.ErrOwnerNotFound):
		return "Cliente não encontrado!"
	case errors.Is(err, shop.ErrVehicleNotFound):
		return "Veículo não encontrado!"
	case errors.Is(err, shop.ErrInvalidDate):
		return "Data inválida!"
	case errors.Is(err, shop.ErrInvalidStatus):
		return "Status inválido."
	case errors.Is(err, shop.ErrNotFound):
		return "Registro não encontrado."
	case errors.Is(err, shop.ErrInvalidField):
		return fmt.Sprintf("Campo inválido: %v", err)
	default:
		return fmt.Sprintf("Erro: %v", err)
	}
}
