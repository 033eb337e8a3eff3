package employee

import "fmt"

type HierarchyErrorKind string

const (
	HierarchyCycle    HierarchyErrorKind = "cycle"
	HierarchyBroken   HierarchyErrorKind = "broken"
	HierarchyDangling HierarchyErrorKind = "dangling_manager"
)

// HierarchyError reports an unresolvable manager chain. It blocks request
// creation: an approval chain with gaps must never be produced from guesses.
type HierarchyError struct {
	Kind       HierarchyErrorKind
	EmployeeID string
	Detail     string
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("hierarchy error (%s) for employee %s: %s", e.Kind, e.EmployeeID, e.Detail)
}
