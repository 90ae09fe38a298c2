// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidMutation is returned by the write facade for a mutation that
	// fails validation. Nothing is stored.
	ErrInvalidMutation = errors.New("invalid mutation")
	// ErrRecordExists is returned when a create targets an existing id.
	ErrRecordExists = errors.New("record already exists")
	// ErrRecordMissing is returned when an update targets an unknown id.
	ErrRecordMissing = errors.New("record does not exist")

	// ErrInvalidSubmission is returned by the ledger service for a
	// submission that fails validation.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrSubmissionConflict is returned when the server of record refuses
	// a submission because of existing data.
	ErrSubmissionConflict = errors.New("submission conflicts with existing data")
	// ErrNotFound is returned when a submission updates a row that does not
	// exist on the server.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned for a storage failure worth retrying.
	ErrUnavailable = errors.New("service temporarily unavailable")
)
