package models

import "errors"

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusDormant  ClientStatus = "DORMANT"
	ClientStatusArchived ClientStatus = "ARCHIVED"
)

func ParseClientStatus(s string) (ClientStatus, error) {
	switch ClientStatus(s) {
	case ClientStatusActive, ClientStatusDormant, ClientStatusArchived:
		return ClientStatus(s), nil
	}
	return "", errors.New("invalid client status")
}

type ServiceStatus string

const (
	ServiceStatusActive ServiceStatus = "ACTIVE"
	ServiceStatusPaused ServiceStatus = "PAUSED"
	ServiceStatusEnded  ServiceStatus = "ENDED"
)

func ParseServiceStatus(s string) (ServiceStatus, error) {
	switch ServiceStatus(s) {
	case ServiceStatusActive, ServiceStatusPaused, ServiceStatusEnded:
		return ServiceStatus(s), nil
	}
	return "", errors.New("invalid service status")
}

type ComplianceStatus string

const (
	ComplianceStatusPending ComplianceStatus = "PENDING"
	ComplianceStatusFiled   ComplianceStatus = "FILED"
	ComplianceStatusOverdue ComplianceStatus = "OVERDUE"
	ComplianceStatusExempt  ComplianceStatus = "EXEMPT"
)

func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	switch ComplianceStatus(s) {
	case ComplianceStatusPending, ComplianceStatusFiled, ComplianceStatusOverdue, ComplianceStatusExempt:
		return ComplianceStatus(s), nil
	}
	return "", errors.New("invalid compliance status")
}

// Live reports whether the item still blocks regeneration of the same
// obligation. A filed obligation does not block the next period's one.
func (s ComplianceStatus) Live() bool {
	return s != ComplianceStatusFiled
}

type ComplianceSource string

const (
	ComplianceSourceCompaniesHouse ComplianceSource = "COMPANIES_HOUSE"
	ComplianceSourceHMRC           ComplianceSource = "HMRC"
	ComplianceSourceManual         ComplianceSource = "MANUAL"
)

func ParseComplianceSource(s string) (ComplianceSource, error) {
	switch ComplianceSource(s) {
	case ComplianceSourceCompaniesHouse, ComplianceSourceHMRC, ComplianceSourceManual:
		return ComplianceSource(s), nil
	}
	return "", errors.New("invalid compliance source")
}

// ComplianceType is the obligation vocabulary. The well-known filing types
// below drive due-date defaults and the service-kind classifier; manually
// created items may carry a free-form type outside this set.
type ComplianceType string

const (
	ComplianceTypeAnnualAccounts        ComplianceType = "ANNUAL_ACCOUNTS"
	ComplianceTypeConfirmationStatement ComplianceType = "CONFIRMATION_STATEMENT"
	ComplianceTypeCorporationTax        ComplianceType = "CORPORATION_TAX"
	ComplianceTypeVATReturn             ComplianceType = "VAT_RETURN"
	ComplianceTypeSelfAssessment        ComplianceType = "SELF_ASSESSMENT"
	ComplianceTypePayrollRTI            ComplianceType = "PAYROLL_RTI"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return TaskStatus(s), nil
	}
	return "", errors.New("invalid task status")
}

// Open reports whether the task still represents work in flight.
func (s TaskStatus) Open() bool {
	return s == TaskStatusOpen || s == TaskStatusInProgress
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(s), nil
	}
	return "", errors.New("invalid task priority")
}

// rank orders priorities so escalation can tell when a bump is needed.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityUrgent:
		return 3
	case TaskPriorityHigh:
		return 2
	case TaskPriorityMedium:
		return 1
	default:
		return 0
	}
}

type UserRole string

const (
	UserRoleAdmin   UserRole = "A"
	UserRolePartner UserRole = "P"
	UserRoleStaff   UserRole = "S"
)
