package catalog

import (
	"strings"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/signature"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

// Operator is one overload of a named operator. Overloads share an
// operator name; the catalog name carries the signature so each overload
// is addressable on its own.
type Operator struct {
	object.BaseObject
	operatorName  string
	operands      []signature.Operand
	signature     *signature.Signature
	returnType    types.DataType
	body          statements.Expression
	requiredRight string
}

func NewOperator(operatorName string, operands []signature.Operand, returnType types.DataType, body statements.Expression) *Operator {
	sig := signature.FromOperands(operands)
	return &Operator{
		BaseObject:   object.NewBaseObject(object.KindOperator, operatorName+sig.String()),
		operatorName: operatorName,
		operands:     append([]signature.Operand(nil), operands...),
		signature:    sig,
		returnType:   returnType,
		body:         body,
	}
}

func (o *Operator) OperatorName() string            { return o.operatorName }
func (o *Operator) Signature() *signature.Signature { return o.signature }
func (o *Operator) ReturnType() types.DataType      { return o.returnType }
func (o *Operator) Body() statements.Expression     { return o.body }
func (o *Operator) Operands() []signature.Operand {
	return append([]signature.Operand(nil), o.operands...)
}

// RequiredRight is the right a caller needs to invoke the operator, if any.
func (o *Operator) RequiredRight() string { return o.requiredRight }

// SetRequiredRight checks right against the configured rights.
func (o *Operator) SetRequiredRight(rights *Rights, right string) error {
	if _, err := rights.Get(right); err != nil {
		return err
	}
	o.requiredRight = right
	return nil
}

func (o *Operator) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.Contains(o.Name()) {
		return nil
	}
	if err := object.Include(session, o, source, target, mode); err != nil {
		return err
	}
	for _, operand := range o.operands {
		if err := operand.Type.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	if o.returnType != nil {
		return o.returnType.IncludeDependencies(session, source, target, mode)
	}
	return nil
}

func (o *Operator) emitOperatorName() string {
	if o.IsSessionObject() {
		return o.SessionObjectName()
	}
	return object.EnsureRooted(o.operatorName)
}

func (o *Operator) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	names := make([]string, len(o.operands))
	for i, operand := range o.operands {
		names[i] = operand.Name
	}
	var returnType statements.TypeSpecifier
	if o.returnType != nil {
		returnType = o.returnType.EmitSpecifier(mode)
	}
	return statements.NewCreateOperatorStatement(
		o.emitOperatorName(),
		o.signature.EmitParameters(names, mode),
		returnType,
		o.body,
		o.EmitMetaData(mode),
	), nil
}

func (o *Operator) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	s := statements.NewDropStatement(statements.DropOperator, o.emitOperatorName())
	params := make([]string, o.signature.Count())
	for i, e := range o.signature.Elements() {
		params[i] = e.Type.EmitSpecifier(mode).String()
		if e.IsVar() {
			params[i] = "var " + params[i]
		}
	}
	s.Signature = "(" + strings.Join(params, ", ") + ")"
	return s, nil
}

// BuildOperatorMap indexes every operator in c by operator name for
// overload resolution.
func BuildOperatorMap(c *object.Catalog, cacheSize int) (*signature.OperatorMap[*Operator], error) {
	m, err := signature.NewOperatorMap[*Operator](cacheSize)
	if err != nil {
		return nil, err
	}
	for _, obj := range c.Objects() {
		if op, ok := obj.(*Operator); ok {
			m.Add(op.OperatorName(), op.Signature(), op)
		}
	}
	return m, nil
}
