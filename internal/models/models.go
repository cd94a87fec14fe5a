// Package models defines the domain types shared across docsort services.
package models

import (
	"time"

	"docsort/pkg/taxonomy"
)

// ProcessingOutcome records what happened to a single input file. It is
// created once by the batch coordinator and never mutated afterwards.
type ProcessingOutcome struct {
	OriginalFilename string            `json:"original_filename"`
	Category         taxonomy.Category `json:"category"`
	// RenamedTo is the destination filename when an identifier-based
	// rename took place; nil means the original name was kept.
	RenamedTo *string `json:"renamed_to,omitempty"`
	// Error carries the failure that routed this file to error_files.
	Error *string `json:"error,omitempty"`
}

// RunSummary aggregates one batch run for reporting and history.
type RunSummary struct {
	ID         string                    `json:"id"`
	RootDir    string                    `json:"root_dir"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	Counts     map[taxonomy.Category]int `json:"counts"`
	Outcomes   []ProcessingOutcome       `json:"outcomes"`
}

// TotalFiles returns the number of files the run processed.
func (s RunSummary) TotalFiles() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// ChequeRecord is the structured result of LLM field extraction for one
// cheque image. Every field except FileName may be null when the model
// could not read it; a failed extraction yields an all-null record.
type ChequeRecord struct {
	FileName         *string `json:"fileName"`
	IBAN             *string `json:"iban"`
	CheckNumber      *string `json:"checkNumber"`
	BranchCode       *string `json:"branchCode"`
	AccountNumber    *string `json:"accountNumber"`
	CustomerIDNumber *string `json:"customerIdNumber"`
	BankCode         *string `json:"bankCode"`
	MICRCode         *string `json:"micrCode"`
	CheckAmount      *string `json:"checkAmount"`
}

// HasData reports whether any extracted field besides the filename is set.
func (r ChequeRecord) HasData() bool {
	for _, f := range []*string{
		r.IBAN, r.CheckNumber, r.BranchCode, r.AccountNumber,
		r.CustomerIDNumber, r.BankCode, r.MICRCode, r.CheckAmount,
	} {
		if f != nil {
			return true
		}
	}
	return false
}

// NullChequeRecord builds the degraded all-null record for a file.
func NullChequeRecord(fileName string) ChequeRecord {
	rec := ChequeRecord{}
	if fileName != "" {
		rec.FileName = &fileName
	}
	return rec
}
