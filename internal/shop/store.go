// Package shop holds the shop's three record collections and the rules that
// keep them consistent with each other.
//
// A Store owns the clients, vehicles and service orders loaded from one data
// directory. Repositories (Clients, Vehicles, Orders) are thin views over the
// store; each mutation rewrites the affected collection files before it
// returns. Vehicles refer to clients by tax id and orders refer to vehicles
// by plate. Those references are weak: deleting a client clears the owner of
// its vehicles and deleting a vehicle clears the plate of its orders, nothing
// is deleted in cascade.
//
// The store is not safe for concurrent use.
package shop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Store is the in-memory state of one data directory.
type Store struct {
	dir    string
	logger *zap.Logger

	clients  []schema.Client
	vehicles []schema.Vehicle
	orders   []schema.ServiceOrder

	// stamps records each collection file as last read or written.
	stamps map[string]fileStamp
}

// fileStamp identifies one version of a collection file.
type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statFile(path string) fileStamp {
	fi, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: fi.Size(), modTime: fi.ModTime()}
}

// LoadReport describes what Load had to skip or repair.
type LoadReport struct {
	// Skipped lists record lines that could not be parsed.
	Skipped []*schema.LineError
	// Failed maps a collection file to the error that kept it from loading.
	// Such a collection starts empty.
	Failed map[string]error
	// OrphanedVehicles lists plates whose owner tax id matched no client.
	OrphanedVehicles []string
	// DetachedOrders lists order ids whose plate matched no vehicle.
	DetachedOrders []int
}

// Clean reports whether everything loaded without skips or repairs.
func (r *LoadReport) Clean() bool {
	return len(r.Skipped) == 0 && len(r.Failed) == 0 &&
		len(r.OrphanedVehicles) == 0 && len(r.DetachedOrders) == 0
}

// New creates an empty store bound to dir. Nothing is read until Load.
// A nil logger disables logging.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:      dir,
		logger:   logger.Named("shop"),
		clients:  []schema.Client{},
		vehicles: []schema.Vehicle{},
		orders:   []schema.ServiceOrder{},
		stamps:   map[string]fileStamp{},
	}
}

// Open creates a store bound to dir and loads it.
//
// Example:
//
//	st, report := shop.Open("data", logger)
//	if !report.Clean() {
//	    // show warnings
//	}
//	_, err := st.Clients().Register("Ana Silva", "111.111.111-11", "(11) 99999-0000")
func Open(dir string, logger *zap.Logger) (*Store, *LoadReport) {
	s := New(dir, logger)
	return s, s.Load()
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of a collection file inside the data directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load replaces the in-memory collections with the contents of the data
// directory, then resolves references. Clients load first, then vehicles
// (linked to clients), then orders (linked to vehicles).
//
// Load never fails as a whole: a collection whose file cannot be read starts
// empty and is listed in the report.
func (s *Store) Load() *LoadReport {
	report := &LoadReport{Failed: map[string]error{}}

	s.clients = loadCollection(s, report, schema.ClientsFile, schema.ReadClients)
	s.vehicles = loadCollection(s, report, schema.VehiclesFile, schema.ReadVehicles)
	s.orders = loadCollection(s, report, schema.OrdersFile, schema.ReadOrders)

	s.link(report)

	s.logger.Debug("loaded data dir",
		zap.String("dir", s.dir),
		zap.Int("clients", len(s.clients)),
		zap.Int("vehicles", len(s.vehicles)),
		zap.Int("orders", len(s.orders)),
	)
	return report
}

func loadCollection[T any](s *Store, report *LoadReport, name string, read func(string) ([]T, []*schema.LineError, error)) []T {
	path := s.Path(name)
	s.stamps[name] = statFile(path)
	records, skipped, err := read(path)
	if err != nil {
		s.logger.Warn("collection unreadable, starting empty", zap.String("file", path), zap.Error(err))
		report.Failed[name] = err
		return []T{}
	}
	for _, le := range skipped {
		s.logger.Warn("skipping invalid record line", zap.String("file", le.Path), zap.Int("line", le.Line), zap.Error(le.Err))
	}
	report.Skipped = append(report.Skipped, skipped...)
	return records
}

// Stale reports whether any collection file changed on disk since the store
// last read or wrote it, e.g. because another process saved it.
func (s *Store) Stale() bool {
	for _, name := range []string{schema.ClientsFile, schema.VehiclesFile, schema.OrdersFile} {
		if statFile(s.Path(name)) != s.stamps[name] {
			return true
		}
	}
	return false
}

// Clients returns the client repository.
func (s *Store) Clients() Clients {
	return Clients{s: s}
}

// Vehicles returns the vehicle repository.
func (s *Store) Vehicles() Vehicles {
	return Vehicles{s: s}
}

// Orders returns the service order lifecycle controller.
func (s *Store) Orders() Orders {
	return Orders{s: s}
}

// Counts returns the size of each collection.
func (s *Store) Counts() (clients, vehicles, orders int) {
	return len(s.clients), len(s.vehicles), len(s.orders)
}

// Snapshot returns copies of all three collections.
func (s *Store) Snapshot() ([]schema.Client, []schema.Vehicle, []schema.ServiceOrder) {
	return slices.Clone(s.clients), slices.Clone(s.vehicles), slices.Clone(s.orders)
}

func (s *Store) saveClients() error {
	return s.persist(schema.ClientsFile, schema.WriteClients(s.Path(schema.ClientsFile), s.clients))
}

func (s *Store) saveVehicles() error {
	return s.persist(schema.VehiclesFile, schema.WriteVehicles(s.Path(schema.VehiclesFile), s.vehicles))
}

func (s *Store) saveOrders() error {
	return s.persist(schema.OrdersFile, schema.WriteOrders(s.Path(schema.OrdersFile), s.orders))
}

// persist tags a write error as ErrPersistence and logs it.
func (s *Store) persist(name string, err error) error {
	if err == nil {
		s.stamps[name] = statFile(s.Path(name))
		return nil
	}
	s.logger.Error("failed to save collection", zap.String("file", name), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// joinSaves combines the results of the writes of one cascading operation.
func joinSaves(errs ...error) error {
	return errors.Join(errs...)
}
