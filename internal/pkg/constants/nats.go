package constants

// Event streams
const (
	// StreamFinance holds every event emitted by the finance storage module
	StreamFinance = "FINANCE"

	// SubjectTransactionsCommitted is published once per successful commit
	SubjectTransactionsCommitted = "finance.transactions.committed"
	// SubjectFinanceAll matches every finance subject for the stream definition
	SubjectFinanceAll = "finance.>"
)

// Staging lock keys
const (
	// KeyStageLock Format: {tenant}:{stage}:{groupId}
	KeyStageLock = "%s:%s:%s"
)
