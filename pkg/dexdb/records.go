package dexdb

// Class is one row of the classes table. ID is the class_def index inside the
// DEX image; Name and Superclass are dotted Java names.
type Class struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AccessFlags uint32 `json:"access_flags"`
	Superclass  string `json:"superclass"`
}

// Field is one row of the static_fields or instance_fields table. Type is a
// type descriptor such as "Ljava/lang/String;".
type Field struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	AccessFlags uint32 `json:"access_flags"`
	ClassID     int64  `json:"class_id"`
}

// MethodKind distinguishes direct from virtual methods.
type MethodKind int

const (
	MethodDirect  MethodKind = 0
	MethodVirtual MethodKind = 1
)

func (k MethodKind) String() string {
	switch k {
	case MethodDirect:
		return "direct"
	case MethodVirtual:
		return "virtual"
	default:
		return "unknown"
	}
}

// Method is one row of the methods table. Descriptor is the method prototype,
// e.g. "(ILjava/lang/String;)V".
type Method struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Kind        MethodKind `json:"kind"`
	Descriptor  string     `json:"descriptor"`
	AccessFlags uint32     `json:"access_flags"`
	ClassID     int64      `json:"class_id"`
}
