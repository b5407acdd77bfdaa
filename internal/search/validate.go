package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// numberPattern is the decimal floating-point grammar accepted for power
// literals.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumber reports whether s is a decimal number in the power literal
// grammar.
func IsNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// ContractError reports a malformed tree: something no parse can produce,
// such as a nil child, an unknown operator or a non-numeric power literal.
// It is a programming error, not a user-facing condition.
type ContractError struct {
	Problems []string
}

func (e *ContractError) Error() string {
	return "malformed search tree: " + strings.Join(e.Problems, "; ")
}

// IsContractError reports whether err is, or wraps, a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// Validate checks that n is a well-formed tree. It returns nil or a
// *ContractError listing every problem found.
//
// Validate is a pure function with no side effects.
func Validate(n Node) error {
	v := &validator{}
	v.validateNode("root", n)
	if len(v.problems) == 0 {
		return nil
	}
	return &ContractError{Problems: v.problems}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(path, format string, args ...any) {
	v.problems = append(v.problems, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) validateNode(path string, n Node) {
	switch node := n.(type) {
	case nil:
		v.addProblem(path, "nil node")
	case Or:
		v.validateOr(path, node)
	case *Or:
		if node == nil {
			v.addProblem(path, "nil node")
			return
		}
		v.validateOr(path, *node)
	case And:
		v.validateOperands(path+".and", node.Operands)
	case *And:
		if node == nil {
			v.addProblem(path, "nil node")
			return
		}
		v.validateOperands(path+".and", node.Operands)
	case Negated:
		v.validateNode(path+".negated", node.Operand)
	case *Negated:
		if node == nil {
			v.addProblem(path, "nil node")
			return
		}
		v.validateNode(path+".negated", node.Operand)
	case KeywordNode:
		v.validateKeyword(path, node.Keyword)
	case *KeywordNode:
		if node == nil {
			v.addProblem(path, "nil node")
			return
		}
		v.validateKeyword(path, node.Keyword)
	default:
		v.addProblem(path, "unknown node type %T", n)
	}
}

func (v *validator) validateOr(path string, or Or) {
	// An empty Or matches nothing; no grammar path produces one.
	if len(or.Operands) == 0 {
		v.addProblem(path, "or without operands")
	}
	v.validateOperands(path+".or", or.Operands)
}

func (v *validator) validateOperands(path string, operands []Node) {
	for i, op := range operands {
		v.validateNode(fmt.Sprintf("%s[%d]", path, i), op)
	}
}

func (v *validator) validateKeyword(path string, k Keyword) {
	switch kw := DerefKeyword(k).(type) {
	case nil:
		v.addProblem(path, "nil keyword")
	case ColorQuery:
		v.validateColor(path+".color", kw.Operator, kw.Operand.Valid(), kw.Operand)
	case ColorIdentityQuery:
		v.validateColor(path+".identity", kw.Operator, kw.Operand.Valid(), kw.Operand)
	case PowerQuery:
		v.validatePower(path+".power", kw)
	case OracleQuery, TypeLineQuery, KeywordQuery, Name:
		// Free text is always bound as a parameter.
	default:
		v.addProblem(path, "unknown keyword type %T", k)
	}
}

func (v *validator) validateColor(path string, op Operator, valid bool, operand fmt.Stringer) {
	if !op.Valid() {
		v.addProblem(path, "invalid operator %s", op)
	}
	if !valid {
		v.addProblem(path, "invalid color operand %q", operand.String())
	}
}

func (v *validator) validatePower(path string, pq PowerQuery) {
	if !pq.Operator.Valid() {
		v.addProblem(path, "invalid operator %s", pq.Operator)
	}
	switch pq.Operand.Kind {
	case PowerSelfToughness:
	case PowerLiteral:
		// The literal is emitted into SQL text, so it must be a number.
		if !IsNumber(pq.Operand.Number) {
			v.addProblem(path, "power operand %q is not a number", pq.Operand.Number)
		}
	default:
		v.addProblem(path, "unknown power operand kind %d", pq.Operand.Kind)
	}
}
