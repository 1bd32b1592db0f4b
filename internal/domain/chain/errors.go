package chain

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed transaction step at the boundary where the
// raw error originates.
type FailureKind string

const (
	FailureUserDeclined FailureKind = "user_declined"
	FailureReverted     FailureKind = "reverted"
	FailureNetwork      FailureKind = "network"
)

// TxError is returned by the transaction layer for simulate and submit.
type TxError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err. Errors that are not a *TxError are
// treated as network failures.
func KindOf(err error) FailureKind {
	var txErr *TxError
	if errors.As(err, &txErr) {
		return txErr.Kind
	}
	return FailureNetwork
}

// IsUserDeclined reports whether the wallet refused to sign.
func IsUserDeclined(err error) bool {
	return err != nil && KindOf(err) == FailureUserDeclined
}
