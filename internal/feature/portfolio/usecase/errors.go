package usecase

import "errors"

// ErrInvalidLedgerState is returned when a chronological replay of an
// account's transactions reaches an impossible position, such as a sell
// recorded before any shares were bought, or a sell of more shares than
// are held. The ledger itself is inconsistent; there is no meaningful
// cost base to report.
var ErrInvalidLedgerState = errors.New("invalid ledger state")
