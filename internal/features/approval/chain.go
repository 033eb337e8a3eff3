package approval

import (
	"go-hrms/internal/config"
	"go-hrms/internal/features/employee"

	"github.com/google/uuid"
)

// ChainPolicy caps approval chain length per request type. A chain stops
// either at the top of the hierarchy or once the policy's step budget for
// that request type is spent, whichever comes first.
type ChainPolicy struct {
	MaxSteps map[RequestType]int
}

func NewChainPolicy(cfg *config.Config) ChainPolicy {
	return ChainPolicy{
		MaxSteps: map[RequestType]int{
			RequestTypeLeave:    cfg.MaxChainStepsLeave,
			RequestTypeOvertime: cfg.MaxChainStepsOvertime,
			RequestTypeLoan:     cfg.MaxChainStepsLoan,
		},
	}
}

func (p ChainPolicy) maxStepsFor(requestType RequestType) int {
	if n, ok := p.MaxSteps[requestType]; ok && n > 0 {
		return n
	}
	// No policy entry: only the hierarchy bounds the chain.
	return int(^uint(0) >> 1)
}

// GenerateApprovalChain builds the ordered approval chain for a new request
// by walking the subject's manager chain upward. One step is emitted per
// distinct job level, levels strictly increasing; consecutive identical
// approvers collapse into a single step.
//
// All-or-nothing: any hierarchy resolution failure returns a non-empty errs
// and no chain. Callers must refuse to create the request when errs is
// non-empty. An empty chain with no errors means the subject is already top
// of the hierarchy; such a request is decidable only via admin override and
// is never auto-approved.
func GenerateApprovalChain(
	subject employee.EmployeeHierarchy,
	all []employee.EmployeeHierarchy,
	requestType RequestType,
	policy ChainPolicy,
) ([]ApprovalChainStep, []string) {
	nodes, err := employee.ResolveChain(subject, all)
	if err != nil {
		return nil, []string{err.Error()}
	}

	maxSteps := policy.maxStepsFor(requestType)

	chain := make([]ApprovalChainStep, 0, len(nodes))
	lastLevel := subject.JobLevel
	lastApprover := subject.EmployeeID

	for _, node := range nodes {
		if node.JobLevel <= lastLevel {
			// Same or lower level than the previous approver: one step per level
			continue
		}
		if node.EmployeeID == lastApprover {
			// Direct manager and department head can be the same person
			continue
		}

		chain = append(chain, ApprovalChainStep{
			ID:                 uuid.NewString(),
			Level:              node.JobLevel,
			ApproverEmployeeID: node.EmployeeID,
			ApproverName:       node.Name,
			ApproverJobTitle:   node.JobTitle,
			Status:             StepStatusPending,
		})
		lastLevel = node.JobLevel
		lastApprover = node.EmployeeID

		if len(chain) >= maxSteps {
			break
		}
	}

	return chain, nil
}
