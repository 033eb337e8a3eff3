package employee

// ResolveChain walks manager links upward from the subject and returns the
// ordered manager chain, nearest manager first. The snapshot passed in must
// contain every employee the walk can touch; a declared manager missing from
// it is an error, never a skip.
//
// The subject itself is not part of the returned chain. A subject that is
// already top of the hierarchy resolves to an empty chain.
func ResolveChain(subject EmployeeHierarchy, all []EmployeeHierarchy) ([]HierarchyNode, error) {
	byID := make(map[string]EmployeeHierarchy, len(all))
	maxLevel := 0
	for _, e := range all {
		byID[e.EmployeeID] = e
		if e.JobLevel > maxLevel {
			maxLevel = e.JobLevel
		}
	}

	if subject.ManagerID == "" {
		if subject.JobLevel >= maxLevel {
			// Already top of hierarchy
			return []HierarchyNode{}, nil
		}
		return nil, &HierarchyError{
			Kind:       HierarchyBroken,
			EmployeeID: subject.EmployeeID,
			Detail:     "employee below top level has no manager assigned",
		}
	}

	visited := map[string]bool{subject.EmployeeID: true}
	var chain []HierarchyNode

	currentID := subject.ManagerID
	for currentID != "" {
		if visited[currentID] {
			return nil, &HierarchyError{
				Kind:       HierarchyCycle,
				EmployeeID: subject.EmployeeID,
				Detail:     "manager chain loops back through " + currentID,
			}
		}
		visited[currentID] = true

		manager, ok := byID[currentID]
		if !ok {
			return nil, &HierarchyError{
				Kind:       HierarchyDangling,
				EmployeeID: subject.EmployeeID,
				Detail:     "declared manager " + currentID + " not found in hierarchy snapshot",
			}
		}

		chain = append(chain, HierarchyNode{
			EmployeeID: manager.EmployeeID,
			Name:       manager.Name,
			JobTitle:   manager.JobTitle,
			JobLevel:   manager.JobLevel,
		})
		currentID = manager.ManagerID
	}

	// The chain must terminate strictly above the requester's level,
	// otherwise nobody in it is empowered to decide.
	top := chain[len(chain)-1]
	if top.JobLevel <= subject.JobLevel {
		return nil, &HierarchyError{
			Kind:       HierarchyBroken,
			EmployeeID: subject.EmployeeID,
			Detail:     "manager chain does not terminate above the employee's own level",
		}
	}

	return chain, nil
}
