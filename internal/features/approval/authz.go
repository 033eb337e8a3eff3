package approval

import "slices"

// Role is the caller's effective approval role, derived from the
// configurable permission set rather than stored as a fixed enum.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Permission codes recognized by the approval engine. Permissions are
// assigned per user; role is always re-derived from them.
const (
	PermManageAll = "approval:manage_all"
	PermViewAll   = "approval:view_all"
	PermApprove   = "approval:approve"
)

// ResolveApprovalRole maps a permission set to the caller's effective role.
func ResolveApprovalRole(permissions []string) Role {
	if slices.Contains(permissions, PermManageAll) {
		return RoleAdmin
	}
	if slices.Contains(permissions, PermViewAll) {
		return RoleHR
	}
	if slices.Contains(permissions, PermApprove) {
		return RoleManager
	}
	return RoleEmployee
}

// CanViewAllRequests is true only for callers with an explicit view-all
// grant (HR or admin equivalent).
func CanViewAllRequests(permissions []string) bool {
	return slices.Contains(permissions, PermManageAll) ||
		slices.Contains(permissions, PermViewAll)
}

// CanViewRequest decides whether the caller may read a single request:
// the requester, anyone named on the chain as approver or delegate, or a
// caller with a view-all grant.
func CanViewRequest(request *ApprovalRequest, callerEmployeeID string, permissions []string) bool {
	if CanViewAllRequests(permissions) {
		return true
	}
	if callerEmployeeID == request.EmployeeID {
		return true
	}
	for _, step := range request.ApprovalChain {
		if callerEmployeeID == step.ApproverEmployeeID {
			return true
		}
		if step.DelegatedTo != "" && callerEmployeeID == step.DelegatedTo {
			return true
		}
	}
	return false
}

// CanActOnStep decides whether the caller may approve or reject the
// request's current step. Admins may act on any pending step regardless of
// the named approver (an override, audited like a normal decision).
// Everyone else must be the current step's approver of record or its
// delegate.
func CanActOnStep(request *ApprovalRequest, callerEmployeeID string, role Role) bool {
	step := request.CurrentChainStep()
	if step == nil || step.Status != StepStatusPending {
		return false
	}

	if role == RoleAdmin {
		return true
	}

	if callerEmployeeID == step.ApproverEmployeeID {
		return true
	}
	return step.DelegatedTo != "" && callerEmployeeID == step.DelegatedTo
}
