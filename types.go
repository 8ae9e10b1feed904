package batchql

// TypeID is the closed set of scalar and composite kinds a column can carry.
// Bound column references used by the delim-join planner point at a value
// of this type, not at a full expression.
type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDInt
	TypeIDFloat
	TypeIDBoolean
	TypeIDString
	TypeIDTime
	TypeIDDuration
	TypeIDList
	TypeIDStruct
	TypeIDUnion
)

func (id TypeID) String() string {
	switch id {
	case TypeIDNull:
		return "NULL"
	case TypeIDInt:
		return "INT"
	case TypeIDFloat:
		return "FLOAT"
	case TypeIDBoolean:
		return "BOOLEAN"
	case TypeIDString:
		return "STRING"
	case TypeIDTime:
		return "TIME"
	case TypeIDDuration:
		return "DURATION"
	case TypeIDList:
		return "LIST"
	case TypeIDStruct:
		return "STRUCT"
	case TypeIDUnion:
		return "UNION"
	default:
		return "UNKNOWN"
	}
}

type Type struct {
	TypeID TypeID
	List   struct {
		Element *Type
	}
	Struct struct {
		Fields []StructField
	}
	Union struct {
		Alternatives []Type
	}
}

type StructField struct {
	Name string
	Type Type
}

// BoundReference is a (type, index) pair into one of a join's child
// relations — the shape the delim-join planner's duplicate-eliminated
// columns and group keys are expressed in.
type BoundReference struct {
	Type  Type
	Index int
}
