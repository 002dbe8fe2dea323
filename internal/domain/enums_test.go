package domain

import "testing"

func TestFlowType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flow FlowType
		want bool
	}{
		{FlowIncome, true},
		{FlowExpense, true},
		{FlowType("transfer"), false},
		{FlowType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.flow), func(t *testing.T) {
			t.Parallel()
			if got := tt.flow.IsValid(); got != tt.want {
				t.Errorf("FlowType(%q).IsValid() = %v, want %v", tt.flow, got, tt.want)
			}
		})
	}
}

func TestCustomerTxType_IsValid(t *testing.T) {
	t.Parallel()

	for _, v := range []CustomerTxType{CustomerTxDeposit, CustomerTxWithdrawal, CustomerTxExtension, CustomerTxPayment} {
		if !v.IsValid() {
			t.Errorf("CustomerTxType(%q).IsValid() = false", v)
		}
	}
	if CustomerTxType("refund").IsValid() {
		t.Error("CustomerTxType(refund).IsValid() = true")
	}
}

func TestMemberStatus_IsValid(t *testing.T) {
	t.Parallel()

	if !MemberStatusTerminated.IsValid() {
		t.Error("terminated should be valid")
	}
	if MemberStatus("retired").IsValid() {
		t.Error("retired should be invalid")
	}
}

func TestDeletionOrder_ChildrenBeforeParents(t *testing.T) {
	t.Parallel()

	order := DeletionOrder()
	pos := make(map[Kind]int, len(order))
	for i, k := range order {
		pos[k] = i
	}
	if len(pos) != 11 {
		t.Fatalf("expected 11 distinct kinds, got %d", len(pos))
	}

	edges := [][2]Kind{
		{KindTransaction, KindCategory},
		{KindTransaction, KindTeam},
		{KindCustomerTransaction, KindCustomer},
		{KindCommission, KindCustomer},
		{KindSalary, KindMember},
		{KindBonus, KindMember},
		{KindMember, KindTeam},
		{KindCustomer, KindTeam},
	}
	for _, e := range edges {
		if pos[e[0]] > pos[e[1]] {
			t.Errorf("%s must be deleted before %s", e[0], e[1])
		}
	}
}
