// Package reconcile decides what to do with an inbound sale given the most
// recent stored sale for the same plate.
package reconcile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
)

// Action is the outcome of reconciling an inbound sale.
type Action string

const (
	ActionInsert    Action = "insert"
	ActionUpdate    Action = "update"
	ActionDuplicate Action = "duplicate"
	ActionResale    Action = "resale"
)

func (a Action) String() string { return string(a) }

// Writes reports whether the action stores a sale row.
func (a Action) Writes() bool { return a != ActionDuplicate }

// Origin is where the inbound sale comes from.
type Origin int

const (
	// OriginAutomated covers deliveries that may repeat, like e-mail webhooks.
	OriginAutomated Origin = iota
	// OriginManual covers documents reviewed by a user before saving.
	OriginManual
)

// Existing is the stored sale the inbound record is compared with.
type Existing struct {
	ID         uuid.UUID
	DocumentID string
}

// Decision is the reconciliation outcome. ExistingID is set for Update and Duplicate.
type Decision struct {
	Action     Action
	ExistingID uuid.UUID
}

// Sale decides between insert, update, duplicate and resale.
//
// A different buyer document on a known plate is a resale and gets a new row.
// The same buyer is a duplicate for automated origins and an update for
// manual ones. A missing document on either side counts as the same buyer.
func Sale(existing *Existing, inboundDocumentID string, origin Origin) Decision {
	if existing == nil {
		return Decision{Action: ActionInsert}
	}

	stored := strings.TrimSpace(existing.DocumentID)
	inbound := strings.TrimSpace(inboundDocumentID)
	if stored != "" && inbound != "" && !domain.SameDocument(stored, inbound) {
		return Decision{Action: ActionResale}
	}

	if origin == OriginManual {
		return Decision{Action: ActionUpdate, ExistingID: existing.ID}
	}
	return Decision{Action: ActionDuplicate, ExistingID: existing.ID}
}
