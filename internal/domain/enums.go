package domain

// FlowType tells whether money comes in or goes out. Categories and
// transactions share it.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

func (f FlowType) String() string { return string(f) }

func (f FlowType) IsValid() bool {
	switch f {
	case FlowIncome, FlowExpense:
		return true
	}
	return false
}

// MemberStatus is the employment state of a team member.
type MemberStatus string

const (
	MemberStatusActive     MemberStatus = "active"
	MemberStatusInactive   MemberStatus = "inactive"
	MemberStatusTerminated MemberStatus = "terminated"
)

func (s MemberStatus) String() string { return string(s) }

func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusTerminated:
		return true
	}
	return false
}

// CustomerType classifies how a customer entered the books.
type CustomerType string

const (
	CustomerTypeNew       CustomerType = "new"
	CustomerTypeDeposit   CustomerType = "deposit"
	CustomerTypeExtension CustomerType = "extension"
)

func (c CustomerType) String() string { return string(c) }

func (c CustomerType) IsValid() bool {
	switch c {
	case CustomerTypeNew, CustomerTypeDeposit, CustomerTypeExtension:
		return true
	}
	return false
}

// CustomerStatus is the lifecycle state of a customer.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

func (c CustomerStatus) String() string { return string(c) }

func (c CustomerStatus) IsValid() bool {
	switch c {
	case CustomerStatusActive, CustomerStatusInactive:
		return true
	}
	return false
}

// CustomerTxType is the kind of movement on a customer's account.
type CustomerTxType string

const (
	CustomerTxDeposit    CustomerTxType = "deposit"
	CustomerTxWithdrawal CustomerTxType = "withdrawal"
	CustomerTxExtension  CustomerTxType = "extension"
	CustomerTxPayment    CustomerTxType = "payment"
)

func (c CustomerTxType) String() string { return string(c) }

func (c CustomerTxType) IsValid() bool {
	switch c {
	case CustomerTxDeposit, CustomerTxWithdrawal, CustomerTxExtension, CustomerTxPayment:
		return true
	}
	return false
}

// PayStatus gates inclusion of compensation records in paid totals.
type PayStatus string

const (
	PayStatusPending PayStatus = "pending"
	PayStatusPaid    PayStatus = "paid"
)

func (p PayStatus) String() string { return string(p) }

func (p PayStatus) IsValid() bool {
	switch p {
	case PayStatusPending, PayStatusPaid:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// Kind names an entity collection. The values double as table names and
// audit log resource names.
type Kind string

const (
	KindTeam                Kind = "teams"
	KindMember              Kind = "members"
	KindCategory            Kind = "categories"
	KindTransaction         Kind = "transactions"
	KindCustomer            Kind = "customers"
	KindCustomerTransaction Kind = "customer_transactions"
	KindSalary              Kind = "salaries"
	KindBonus               Kind = "bonuses"
	KindCommission          Kind = "commissions"
	KindAuditLog            Kind = "audit_logs"
	KindCustomerCount       Kind = "customer_counts"
)

func (k Kind) String() string { return string(k) }

// DeletionOrder lists every kind with children before parents, the order a
// full wipe must follow.
func DeletionOrder() []Kind {
	return []Kind{
		KindAuditLog,
		KindCommission,
		KindBonus,
		KindSalary,
		KindCustomerTransaction,
		KindTransaction,
		KindCustomerCount,
		KindCustomer,
		KindMember,
		KindCategory,
		KindTeam,
	}
}
