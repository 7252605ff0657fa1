package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the stage a service order is in. Values are 1-based because the
// ordinal is what gets persisted.
type Status int

const (
	// StatusAwaitingEvaluation is the status of a freshly opened order.
	StatusAwaitingEvaluation Status = iota + 1
	// StatusInRepair means work on the vehicle has started.
	StatusInRepair
	// StatusFinalized means the repair is done and the vehicle awaits pickup.
	StatusFinalized
	// StatusDelivered means the vehicle went back to its owner.
	StatusDelivered
)

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusAwaitingEvaluation, StatusInRepair, StatusFinalized, StatusDelivered}
}

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	return s >= StatusAwaitingEvaluation && s <= StatusDelivered
}

// String returns the identifier form used in exports and flags.
func (s Status) String() string {
	switch s {
	case StatusAwaitingEvaluation:
		return "AwaitingEvaluation"
	case StatusInRepair:
		return "InRepair"
	case StatusFinalized:
		return "Finalized"
	case StatusDelivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// Label returns the text shown to shop staff.
func (s Status) Label() string {
	switch s {
	case StatusAwaitingEvaluation:
		return "Aguardando Avaliação"
	case StatusInRepair:
		return "Em Reparo"
	case StatusFinalized:
		return "Finalizado"
	case StatusDelivered:
		return "Entregue"
	default:
		return "Desconhecido"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus accepts the ordinal ("2"), the identifier ("InRepair", any case,
// '-' and '_' ignored) or the staff label ("Em Reparo").
func ParseStatus(text string) (Status, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		s := Status(n)
		if !s.IsValid() {
			return 0, fmt.Errorf("status must be between 1 and 4 (got %d)", n)
		}
		return s, nil
	}

	key := normalizeStatusKey(text)
	for _, s := range AllStatuses() {
		if key == normalizeStatusKey(s.String()) || key == normalizeStatusKey(s.Label()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", text)
}

func normalizeStatusKey(s string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(s))
}
