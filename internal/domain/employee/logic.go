package employee

import "errors"

var ErrManagerCycle = errors.New("manager chain contains a cycle")

// maxChainDepth bounds the reporting-line walk so a corrupted chain cannot
// loop forever.
const maxChainDepth = 64

// CheckManagerChain rejects assigning managerID to employeeID when the
// resulting reporting line would contain employeeID again. lookup returns the
// manager of the given employee, or 0 when there is none.
func CheckManagerChain(employeeID, managerID int64, lookup func(int64) (int64, error)) error {
	if managerID == 0 {
		return nil
	}
	current := managerID
	for depth := 0; depth < maxChainDepth; depth++ {
		if current == employeeID {
			return ErrManagerCycle
		}
		next, err := lookup(current)
		if err != nil {
			return err
		}
		if next == 0 {
			return nil
		}
		current = next
	}
	return ErrManagerCycle
}
