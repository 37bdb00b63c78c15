package models

import "fmt"

// ObjectKind distinguishes node edits from edge edits
type ObjectKind int

const (
	NodeObject ObjectKind = iota
	EdgeObject
)

func (k ObjectKind) String() string {
	switch k {
	case NodeObject:
		return "Node"
	case EdgeObject:
		return "Edge"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// EditType is the kind of elementary edit applied in one path step
type EditType int

const (
	EditInsert EditType = iota
	EditDelete
	EditRelabel
)

func (t EditType) String() string {
	switch t {
	case EditInsert:
		return "Insert"
	case EditDelete:
		return "Delete"
	case EditRelabel:
		return "Relabel"
	default:
		return fmt.Sprintf("EditType(%d)", int(t))
	}
}

// NumCategories is the number of distinct operation categories
// (node/edge x insert/delete/relabel).
const NumCategories = 6

// CategoryNames maps category indices to stable export names.
var CategoryNames = [NumCategories]string{
	"NodeInsert", "NodeDelete", "NodeRelabel",
	"EdgeInsert", "EdgeDelete", "EdgeRelabel",
}

// EditOperation locates one elementary edit within an edit path.
type EditOperation struct {
	Kind     ObjectKind `json:"kind"`
	Type     EditType   `json:"type"`
	SourceID int        `json:"source_id"`
	Step     int        `json:"step"`
	TargetID int        `json:"target_id"`
}

// Category returns the operation category index in [0, NumCategories)
func (op EditOperation) Category() int {
	return int(op.Kind)*3 + int(op.Type)
}

func (op EditOperation) String() string {
	return CategoryNames[op.Category()]
}

// CategoryFromString resolves an export name back to a category index
func CategoryFromString(name string) (int, error) {
	for i, n := range CategoryNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown operation category: %q", name)
}

// OperationFromCategory reconstructs kind and type from a category index
func OperationFromCategory(category int) (ObjectKind, EditType, error) {
	if category < 0 || category >= NumCategories {
		return 0, 0, fmt.Errorf("operation category out of range: %d", category)
	}
	return ObjectKind(category / 3), EditType(category % 3), nil
}
