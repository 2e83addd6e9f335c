package models

import (
	"time"
)

// ComplianceItem is a tracked regulatory filing obligation for a client.
// Items are derived from active services by reconciliation or created
// manually by an operator. At most one non-FILED item may exist per
// (client_id, service_id, type) triple; cleanup repairs violations rather
// than the store preventing them.
type ComplianceItem struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	ClientId    string           `gorm:"index;size:36;not null" json:"client_id" binding:"required"`
	ServiceId   string           `gorm:"index;size:36" json:"service_id"` // blank for manual items
	Type        ComplianceType   `gorm:"size:50;not null" json:"type" binding:"required"`
	Description string           `gorm:"size:255" json:"description"`
	DueDate     *time.Time       `json:"due_date"`
	Status      ComplianceStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Source      ComplianceSource `gorm:"size:30;not null;default:'MANUAL'" json:"source"`
	Reference   string           `gorm:"size:100" json:"reference"` // e.g. company registration number
	Period      string           `gorm:"size:100" json:"period"`    // e.g. accounting period label
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"` // refreshed on every mutation, including status transitions
}

func (c ComplianceItem) RecordID() string { return c.ID }

type NewComplianceItem struct {
	ClientId    string           `json:"client_id" binding:"required"`
	ServiceId   string           `json:"service_id"`
	Type        ComplianceType   `json:"type" binding:"required"`
	Description string           `json:"description"`
	DueDate     *time.Time       `json:"due_date"`
	Source      ComplianceSource `json:"source"`
	Reference   string           `json:"reference"`
	Period      string           `json:"period"`
}

// UpdateComplianceItem is the generic update payload. Nil fields are left
// untouched. Applying it always refreshes updated_at, and it is the only
// path that may overwrite a FILED or EXEMPT item (operator override).
type UpdateComplianceItem struct {
	Description *string           `json:"description"`
	DueDate     *time.Time        `json:"due_date"`
	Status      *ComplianceStatus `json:"status"`
	Source      *ComplianceSource `json:"source"`
	Reference   *string           `json:"reference"`
	Period      *string           `json:"period"`
}

// ComplianceFilter narrows listing operations. Zero values mean no filter.
type ComplianceFilter struct {
	ClientId  string
	ServiceId string
	Type      ComplianceType
	Status    ComplianceStatus
	Source    ComplianceSource
	Portfolio string
	DueFrom   *time.Time
	DueTo     *time.Time
}

// ComplianceStatistics summarizes the register for dashboards.
type ComplianceStatistics struct {
	Total        int                      `json:"total"`
	ByStatus     map[ComplianceStatus]int `json:"by_status"`
	ByType       map[ComplianceType]int   `json:"by_type"`
	BySource     map[ComplianceSource]int `json:"by_source"`
	Overdue      int                      `json:"overdue"`
	DueThisMonth int                      `json:"due_this_month"`
}
