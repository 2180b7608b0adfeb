package apperror

// Code pairs a stable machine readable code with its default message
type Code struct {
	Code    string
	Message string
}

// WithMessage returns the code with a different message
func (c Code) WithMessage(message string) Code {
	c.Message = message
	return c
}

var (
	CodeGeneric        = Code{"genericError", "Generic error"}
	CodeFieldRequired  = Code{"-1", "may not be null"}
	CodeInvalidValue   = Code{"-1", "must be greater than or equal to 0"}
	CodeMissingTenant  = Code{"missingTenant", "X-Okapi-Tenant header is required"}
	CodeInvalidToken   = Code{"invalidToken", "Invalid X-Okapi-Token"}
	CodeInvalidPayload = Code{"invalidPayload", "Request body could not be parsed"}
	CodeInvalidID      = Code{"invalidId", "Id must be a valid UUID"}
	CodeIDMismatch     = Code{"idMismatch", "Id in the path does not match the id in the body"}

	CodeEmptyBatch               = Code{"emptyBatch", "At least one of the batch operations needs to be used."}
	CodeIDIsRequired             = Code{"idIsRequiredInTransactions", "Id is required in transactions to create and update."}
	CodeDuplicateTransactionIDs  = Code{"duplicateTransactionIds", "Transaction ids must be unique within a batch"}
	CodeMissingOrderID           = Code{"missingOrderId", "Encumbrance must reference a purchase order"}
	CodeMissingInvoiceID         = Code{"missingInvoiceId", "Transaction must reference an invoice"}
	CodeMissingFundID            = Code{"missingFundId", "Fund id is required"}
	CodeAllocationMustBePositive = Code{"allocationMustBePositive", "Allocation amount must be greater than zero"}
	CodeNegativeAmount           = Code{"paymentOrCreditHasNegativeAmount", "A payment or credit has a negative amount"}
	CodeInvalidCurrency          = Code{"invalidCurrency", "Currency is not a valid ISO 4217 code"}
	CodeInvalidTransactionType   = Code{"invalidTransactionType", "Unknown transaction type"}

	CodeBudgetNotActiveOrPlanned = Code{"budgetIsNotActiveOrPlanned", "Budget should be active or planned"}
	CodeBudgetIsInactive         = Code{"budgetIsInactive", "Cannot create encumbrance from the not active budget"}
	CodeBudgetNotFound           = Code{"budgetNotFound", "Budget not found"}
	CodeBudgetNotFoundForTxn     = Code{"budgetNotFoundForTransaction", "Budget not found for transaction"}
	CodeLedgerNotFoundForTxn     = Code{"ledgerNotFoundForTransaction", "Ledger not found for transaction"}
	CodeFundNotFound             = Code{"fundNotFound", "Fund not found"}
	CodeBudgetHasMoney           = Code{"budgetHasMoney", "Budget can not be deleted while it has encumbered, awaiting payment or expended amounts"}
	CodeRestrictedEncumbrance    = Code{"budgetRestrictedEncumbranceError", "Budget is restricted, not enough money left to encumber"}
	CodeRestrictedExpenditures   = Code{"budgetRestrictedExpendituresError", "Fund cannot be paid due to restrictions"}

	CodeOutdatedFundID            = Code{"outdatedFundIdInEncumbrance", "The fund of the linked encumbrance has changed"}
	CodeLinkedEncumbranceNotFound = Code{"linkedEncumbrancesNotFound", "Linked encumbrances not found"}
	CodeOrderIsClosed             = Code{"orderIsClosed", "The order status of a closed encumbrance cannot change"}
	CodeUpdateNotAllowed          = Code{"updateNotAllowed", "Updates of this transaction type are not implemented."}
	CodeDeleteNotAllowed          = Code{"deleteNotAllowed", "Only encumbrances and pending payments can be deleted"}
	CodeTransactionIsReferenced   = Code{"transactionIsReferenced", "Transaction is still referenced by other transactions"}

	CodeTransactionNotFound         = Code{"transactionNotFound", "Transaction not found"}
	CodeTransactionsToDeleteMissing = Code{"transactionsToDeleteNotFound", "One or more transaction to delete was not found"}
	CodeTransactionExists           = Code{"transactionAlreadyExists", "A transaction with this id already exists"}
	CodeTransactionAlreadyProcessed = Code{"transactionAlreadyProcessed", "Transaction has already been processed"}
	CodeAllAlreadyProcessed         = Code{"allExpectedTransactionsAlreadyProcessed", "All expected transactions already processed"}
	CodeSummaryNotFound             = Code{"transactionSummaryNotFound", "Transaction summary not found for transaction"}
	CodeConflict                    = Code{"conflict", "The record was modified by another process, reload it and retry"}
)
