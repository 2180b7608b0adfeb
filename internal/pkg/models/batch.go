package models

import "time"

// TransactionPatch is a partial transaction keyed by id
type TransactionPatch map[string]interface{}

// ID returns the id field of the patch, or ""
func (p TransactionPatch) ID() string {
	id, _ := p["id"].(string)
	return id
}

// Batch is the all-or-nothing request of the batch protocol
type Batch struct {
	TransactionsToCreate      []Transaction      `json:"transactionsToCreate,omitempty"`
	TransactionsToUpdate      []Transaction      `json:"transactionsToUpdate,omitempty"`
	IdsOfTransactionsToDelete []string           `json:"idsOfTransactionsToDelete,omitempty"`
	TransactionPatches        []TransactionPatch `json:"transactionPatches,omitempty"`
}

// IsEmpty reports whether no operation was requested
func (b *Batch) IsEmpty() bool {
	return len(b.TransactionsToCreate) == 0 && len(b.TransactionsToUpdate) == 0 &&
		len(b.IdsOfTransactionsToDelete) == 0 && len(b.TransactionPatches) == 0
}

// TransactionsCommittedEvent is published after a commit reached the database
type TransactionsCommittedEvent struct {
	Tenant      string    `json:"tenant"`
	Protocol    string    `json:"protocol"`
	GroupID     string    `json:"groupId,omitempty"`
	Created     []string  `json:"created,omitempty"`
	Updated     []string  `json:"updated,omitempty"`
	Deleted     []string  `json:"deleted,omitempty"`
	BudgetIDs   []string  `json:"budgetIds,omitempty"`
	CommittedAt time.Time `json:"committedAt"`
}
