package statements

import "strings"

// BlockStatement is an ordered list of statements emitted as one script.
type BlockStatement struct {
	BaseStatement
	Statements []Statement
}

func NewBlockStatement() *BlockStatement {
	return &BlockStatement{
		BaseStatement: NewBaseStatement(Block),
		Statements:    make([]Statement, 0),
	}
}

// Add appends statements, flattening nested blocks.
func (b *BlockStatement) Add(stmts ...Statement) {
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if nested, ok := s.(*BlockStatement); ok {
			b.Add(nested.Statements...)
			continue
		}
		b.Statements = append(b.Statements, s)
	}
}

// Len returns the number of statements in the block.
func (b *BlockStatement) Len() int {
	return len(b.Statements)
}

// Count returns the number of statements of the given type.
func (b *BlockStatement) Count(stmtType StatementType) int {
	n := 0
	for _, s := range b.Statements {
		if s.GetType() == stmtType {
			n++
		}
	}
	return n
}

// String renders one statement per line, each terminated by a semicolon.
func (b *BlockStatement) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}

// Validate validates every statement and returns the first failure.
func (b *BlockStatement) Validate() error {
	for _, s := range b.Statements {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
