package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		Balance: d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		Balance: m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToModelPostingGroup converts a domain PostingGroup to its model form.
func ToModelPostingGroup(d domain.PostingGroup) models.PostingGroup {
	return models.PostingGroup{
		GroupID:          d.GroupID,
		GroupDate:        d.GroupDate,
		Description:      d.Description,
		Status:           models.PostingStatus(d.Status),
		IdempotencyKey:   d.IdempotencyKey,
		EntryHash:        d.EntryHash,
		Amount:           d.Amount,
		OriginalGroupID:  d.OriginalGroupID,
		ReversingGroupID: d.ReversingGroupID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainPostingGroup converts a model PostingGroup to its domain form.
func ToDomainPostingGroup(m models.PostingGroup) domain.PostingGroup {
	return domain.PostingGroup{
		GroupID:          m.GroupID,
		GroupDate:        m.GroupDate,
		Description:      m.Description,
		Status:           domain.PostingStatus(m.Status),
		IdempotencyKey:   m.IdempotencyKey,
		EntryHash:        m.EntryHash,
		Amount:           m.Amount,
		OriginalGroupID:  m.OriginalGroupID,
		ReversingGroupID: m.ReversingGroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelEntry converts a domain Entry to its model form.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:   d.EntryID,
		GroupID:   d.GroupID,
		AccountID: d.AccountID,
		Amount:    d.Amount,
		Direction: models.EntryDirection(d.Direction),
		EntryDate: d.EntryDate,
		Notes:     d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		RunningBalance: d.RunningBalance,
	}
}

// ToDomainEntry converts a model Entry to its domain form.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:   m.EntryID,
		GroupID:   m.GroupID,
		AccountID: m.AccountID,
		Amount:    m.Amount,
		Direction: domain.EntryDirection(m.Direction),
		EntryDate: m.EntryDate,
		Notes:     m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		RunningBalance: m.RunningBalance,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
