// Package export copies the shop's records into other formats: a SQLite
// database, a YAML document and an XLSX workbook.
//
// Exports are snapshots. They are produced from the in-memory collections and
// never read back by oficina.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/micaelyMelo/OficinaMecanica/internal/atomicfile"
	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Source provides the records to export. *shop.Store implements it.
type Source interface {
	Snapshot() ([]schema.Client, []schema.Vehicle, []schema.ServiceOrder)
}

// Snapshot is a point-in-time copy of the three collections.
type Snapshot struct {
	TakenAt  time.Time
	Clients  []schema.Client
	Vehicles []schema.Vehicle
	Orders   []schema.ServiceOrder
}

// Take copies the records of src.
func Take(src Source, now time.Time) *Snapshot {
	clients, vehicles, orders := src.Snapshot()
	return &Snapshot{
		TakenAt:  now,
		Clients:  clients,
		Vehicles: vehicles,
		Orders:   orders,
	}
}

// Stats counts what an export wrote.
type Stats struct {
	Clients  int
	Vehicles int
	Orders   int
}

func (st Stats) String() string {
	return fmt.Sprintf("%d clients, %d vehicles, %d orders", st.Clients, st.Vehicles, st.Orders)
}

func (s *Snapshot) stats() Stats {
	return Stats{Clients: len(s.Clients), Vehicles: len(s.Vehicles), Orders: len(s.Orders)}
}

// ownerNames maps tax id to client name.
func (s *Snapshot) ownerNames() map[string]string {
	m := make(map[string]string, len(s.Clients))
	for _, c := range s.Clients {
		m[c.TaxID] = c.Name
	}
	return m
}

// plates holds the plate of every vehicle in the snapshot.
func (s *Snapshot) plates() map[string]bool {
	m := make(map[string]bool, len(s.Vehicles))
	for _, v := range s.Vehicles {
		m[v.Plate] = true
	}
	return m
}

// Format names an export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatYAML   Format = "yaml"
	FormatXLSX   Format = "xlsx"
)

// Exporter writes snapshots to one destination.
type Exporter struct {
	logger *zap.Logger
}

// New creates an Exporter. A nil logger disables logging.
func New(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger.Named("export")}
}

// ToFile writes snap to path in format. YAML and XLSX files are replaced
// atomically; a SQLite file is updated in a single transaction.
func (e *Exporter) ToFile(ctx context.Context, format Format, path string, snap *Snapshot) (Stats, error) {
	var (
		st  Stats
		err error
	)
	switch format {
	case FormatSQLite:
		st, err = e.toSQLite(ctx, path, snap)
	case FormatYAML, FormatXLSX:
		st, err = e.toBuffered(format, path, snap)
	default:
		return Stats{}, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return Stats{}, err
	}

	e.logger.Info("export written", zap.String("format", string(format)), zap.String("path", path),
		zap.Int("clients", st.Clients), zap.Int("vehicles", st.Vehicles), zap.Int("orders", st.Orders))
	return st, nil
}

// To writes snap to w. SQLite needs a file and is not supported here.
func (e *Exporter) To(w io.Writer, format Format, snap *Snapshot) (Stats, error) {
	var err error
	switch format {
	case FormatYAML:
		err = WriteYAML(w, snap)
	case FormatXLSX:
		err = WriteXLSX(w, snap)
	default:
		return Stats{}, fmt.Errorf("format %q cannot be streamed", format)
	}
	if err != nil {
		return Stats{}, err
	}
	return snap.stats(), nil
}

func (e *Exporter) toSQLite(ctx context.Context, path string, snap *Snapshot) (Stats, error) {
	db, err := Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			e.logger.Warn("failed to close export database", zap.String("path", path), zap.Error(cerr))
		}
	}()

	if err := db.InitSchemaContext(ctx); err != nil {
		return Stats{}, err
	}
	if err := db.ReplaceAll(ctx, snap); err != nil {
		return Stats{}, err
	}
	if e.logger.Core().Enabled(zap.DebugLevel) {
		counts, err := db.countByStatus(ctx)
		if err != nil {
			return Stats{}, err
		}
		byStatus := make(map[string]int, len(counts))
		for st, n := range counts {
			byStatus[st.String()] = n
		}
		e.logger.Debug("orders by status", zap.String("path", path), zap.Any("counts", byStatus))
	}
	return db.Counts(ctx)
}

func (e *Exporter) toBuffered(format Format, path string, snap *Snapshot) (Stats, error) {
	var buf bytes.Buffer
	st, err := e.To(&buf, format, snap)
	if err != nil {
		return Stats{}, err
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return Stats{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return st, nil
}
