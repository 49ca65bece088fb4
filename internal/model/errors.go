package model

import (
	"errors"
	"fmt"
)

// VerificationError means anonymized output failed its leak re-scan.
// It is the only analytical error that aborts an entire run: proceeding
// would risk releasing personal data downstream.
type VerificationError struct {
	DocumentID string
	RiskScore  float64
	Threshold  float64
	Findings   []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("anonymization verification failed for document %s: risk score %.4f exceeds threshold %.4f (%d findings)",
		e.DocumentID, e.RiskScore, e.Threshold, len(e.Findings))
}

// StageError wraps a single analysis lane's internal failure. The
// orchestrator recovers it locally by substituting a fallback result.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// InputError marks a malformed or oversized document. The document is
// excluded from downstream stages; the batch continues.
type InputError struct {
	DocumentID string
	Reason     string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("document %s rejected: %s", e.DocumentID, e.Reason)
}

// IsVerificationError reports whether err is (or wraps) a VerificationError.
func IsVerificationError(err error) bool {
	var ve *VerificationError
	return errors.As(err, &ve)
}
