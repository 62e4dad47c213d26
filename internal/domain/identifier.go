package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const draftPrefix = "draft_"

// ProductID distinguishes products that exist only in an editor draft
// from products the store has issued an identifier for. The distinction
// is carried in the type, not guessed from the identifier's shape.
type ProductID struct {
	value string
	draft bool
}

// NewDraftID issues an identifier for a product that has not been
// persisted yet.
func NewDraftID() ProductID {
	return ProductID{value: draftPrefix + uuid.New().String(), draft: true}
}

// PersistedID wraps a store-issued identifier.
func PersistedID(id string) ProductID {
	return ProductID{value: id}
}

// ParseProductID reconstructs a ProductID from its string form.
func ParseProductID(s string) ProductID {
	if strings.HasPrefix(s, draftPrefix) {
		return ProductID{value: s, draft: true}
	}
	return ProductID{value: s}
}

// IsDraft reports whether the product has not been persisted.
func (id ProductID) IsDraft() bool { return id.draft }

// IsZero reports whether the identifier is unset.
func (id ProductID) IsZero() bool { return id.value == "" }

func (id ProductID) String() string { return id.value }

// Equal compares identifiers by value.
func (id ProductID) Equal(other ProductID) bool {
	return id.value == other.value
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseProductID(s)
	return nil
}
