package catalogio

// Document is the YAML form of a catalog definition. Sections are loaded
// in a fixed order: libraries, types, tables, views, references,
// operators, devices. Within a section objects keep document order, which
// becomes their creation order.
type Document struct {
	Libraries  []LibraryDef   `yaml:"libraries"`
	Types      []TypeDef      `yaml:"types"`
	Tables     []TableDef     `yaml:"tables"`
	Views      []ViewDef      `yaml:"views"`
	References []ReferenceDef `yaml:"references"`
	Operators  []OperatorDef  `yaml:"operators"`
	Devices    []DeviceDef    `yaml:"devices"`
}

type LibraryDef struct {
	Name       string   `yaml:"name"`
	Requisites []string `yaml:"requisites"`
}

// ObjectFlags are the emission flags any object definition may carry.
type ObjectFlags struct {
	Library   string `yaml:"library"`
	Generated bool   `yaml:"generated"`
	AT        bool   `yaml:"at"`
	Session   string `yaml:"session"`
}

type TypeDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	// Size is the native byte size. Zero falls back to the largest parent
	// size, or a handle when the type has no parents.
	Size            int                 `yaml:"size"`
	Like            []string            `yaml:"like"`
	Disposable      bool                `yaml:"disposable"`
	Representations []RepresentationDef `yaml:"representations"`
	Default         string              `yaml:"default"`
	Specials        []SpecialDef        `yaml:"specials"`
}

type RepresentationDef struct {
	Name       string      `yaml:"name"`
	Properties []ColumnDef `yaml:"properties"`
}

type SpecialDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type ColumnDef struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Nilable bool   `yaml:"nilable"`
	Default string `yaml:"default"`
}

type ConstraintDef struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
}

type TableDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	Columns     []ColumnDef     `yaml:"columns"`
	Keys        [][]string      `yaml:"keys"`
	Constraints []ConstraintDef `yaml:"constraints"`
}

type ViewDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	Expression string      `yaml:"expression"`
	Columns    []ColumnDef `yaml:"columns"`
}

type KeyRefDef struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
}

type ActionDef struct {
	Action      string   `yaml:"action"`
	Expressions []string `yaml:"expressions"`
}

type ReferenceDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	Source   KeyRefDef `yaml:"source"`
	Target   KeyRefDef `yaml:"target"`
	Enforced *bool     `yaml:"enforced"`
	Update   ActionDef `yaml:"update"`
	Delete   ActionDef `yaml:"delete"`

	// DerivedFrom names a reference declared earlier in the document this
	// one is derived from.
	DerivedFrom string `yaml:"derivedFrom"`
	Excluded    bool   `yaml:"excluded"`
}

type OperandDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Modifier string `yaml:"modifier"`
}

type OperatorDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	Operands []OperandDef `yaml:"operands"`
	Returns  string       `yaml:"returns"`
	Body     string       `yaml:"body"`
	Right    string       `yaml:"right"`
}

type DeviceDef struct {
	Name        string `yaml:"name"`
	ObjectFlags `yaml:",inline"`

	Class      string            `yaml:"class"`
	Attributes map[string]string `yaml:"attributes"`
}
