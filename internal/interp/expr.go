package interp

import (
	"strconv"
	"strings"

	"github.com/StarSignalAnt/qlang/ast"
	"github.com/StarSignalAnt/qlang/internal/runtime"
	"github.com/StarSignalAnt/qlang/pkg/token"
)

// chain is a fused member-access / method-call / constructor-call pseudo
// token, the Go-native equivalent of QRunner::PreprocessMemberAccess's
// string-reconstructed T_NEW/T_IDENTIFIER pseudo tokens. Operating directly
// on token.Token slices makes this simpler than the original: there is no
// need to rebuild call text and re-tokenize it through a throwaway
// sub-tokenizer, since ast.Expr.Tokens are already structured.
type chain struct {
	isNew     bool
	path      []string
	isCall    bool
	argGroups [][]token.Token // only meaningful when isCall
}

// elem is one slot in a preprocessed expression: either a single raw token
// or a fused chain. Exactly one of the two fields is meaningful.
type elem struct {
	tok token.Token
	ch  *chain
}

func (el elem) isChain() bool { return el.ch != nil }

// evalExpr evaluates an ast.Expression (always a *ast.Expr: see ast.go's
// AST-invariant doc comment) via the Shunting-Yard pipeline.
func (e *Evaluator) evalExpr(expr ast.Expression) runtime.Value {
	return e.evalTokens(exprTokens(expr))
}

// evalTokens is QRunner::EvaluateExpression: preprocess member-access/call
// chains, fuse unary minus, then reduce to a value - either directly (a
// single-element expression) or via infix-to-RPN Shunting-Yard.
func (e *Evaluator) evalTokens(raw []token.Token) runtime.Value {
	if len(raw) == 0 {
		return runtime.NullValue
	}
	elems := preprocessMemberAccess(raw)
	elems = fuseUnaryMinus(elems)
	if len(elems) == 1 {
		return e.resolveElem(elems[0])
	}
	return e.evalShuntingYard(elems)
}

// evalArgGroups evaluates a list of already-split argument token groups.
func (e *Evaluator) evalArgGroups(groups [][]token.Token) []runtime.Value {
	if len(groups) == 0 {
		return nil
	}
	args := make([]runtime.Value, len(groups))
	for i, g := range groups {
		args[i] = e.evalTokens(g)
	}
	return args
}

// evalArgTokens splits toks (the contents between one call's outer parens)
// on top-level commas and evaluates each argument.
func (e *Evaluator) evalArgTokens(toks []token.Token) []runtime.Value {
	return e.evalArgGroups(splitTopLevelCommas(toks))
}

// splitTopLevelCommas splits toks into comma-separated groups, ignoring
// commas nested inside parentheses (e.g. a nested call's own argument
// list). An empty input yields zero groups (a no-argument call).
func splitTopLevelCommas(toks []token.Token) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var groups [][]token.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.COMMA:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, toks[start:])
	return groups
}

// preprocessMemberAccess is QRunner::PreprocessMemberAccess, ported to
// operate on token.Token directly. It walks the flat token list and, on
// recognizing `[new] IDENT(.IDENT)*` optionally followed by a parenthesized
// argument list, fuses the whole run into a single chain elem.
func preprocessMemberAccess(toks []token.Token) []elem {
	var out []elem
	i := 0
	for i < len(toks) {
		hasNew := false
		if toks[i].Type == token.NEW {
			hasNew = true
			i++
			if i >= len(toks) {
				out = append(out, elem{tok: toks[i-1]})
				break
			}
		}

		cur := toks[i]
		if (cur.Type == token.IDENT || cur.Type == token.THIS) &&
			i+1 < len(toks) && (toks[i+1].Type == token.DOT || toks[i+1].Type == token.LPAREN) {

			isStandaloneCall := toks[i+1].Type == token.LPAREN
			path := []string{cur.Literal}
			j := i + 1
			if !isStandaloneCall {
				for j+1 < len(toks) && toks[j].Type == token.DOT && toks[j+1].Type == token.IDENT {
					path = append(path, toks[j+1].Literal)
					j += 2
				}
			}

			if j < len(toks) && toks[j].Type == token.LPAREN {
				depth := 1
				k := j + 1
				for k < len(toks) && depth > 0 {
					switch toks[k].Type {
					case token.LPAREN:
						depth++
					case token.RPAREN:
						depth--
					}
					if depth == 0 {
						break
					}
					k++
				}
				var argGroups [][]token.Token
				if k < len(toks) {
					argGroups = splitTopLevelCommas(toks[j+1 : k])
				}
				out = append(out, elem{ch: &chain{isNew: hasNew, path: path, isCall: true, argGroups: argGroups}})
				if k < len(toks) {
					i = k + 1
				} else {
					i = len(toks)
				}
				continue
			}

			out = append(out, elem{ch: &chain{isNew: hasNew, path: path, isCall: false}})
			i = j
			continue
		}

		if hasNew {
			out = append(out, elem{ch: &chain{isNew: true, path: []string{cur.Literal}, isCall: false}})
			i++
			continue
		}
		out = append(out, elem{tok: cur})
		i++
	}
	return out
}

// fuseUnaryMinus folds a leading/prefix '-' directly into the following
// integer or float literal, matching QRunner::EvaluateExpression's
// dedicated unary-minus pass (run after member-access preprocessing, before
// Shunting-Yard). A '-' is unary when it's the first elem or the previous
// elem is itself an operator or '('.
func fuseUnaryMinus(elems []elem) []elem {
	out := make([]elem, 0, len(elems))
	i := 0
	for i < len(elems) {
		el := elems[i]
		if !el.isChain() && el.tok.Type == token.OPERATOR && el.tok.Literal == "-" {
			isUnary := len(out) == 0
			if !isUnary {
				prev := out[len(out)-1]
				if !prev.isChain() && (prev.tok.Type == token.OPERATOR || prev.tok.Type == token.LPAREN) {
					isUnary = true
				}
			}
			if isUnary && i+1 < len(elems) {
				next := elems[i+1]
				if !next.isChain() && (next.tok.Type == token.INT || next.tok.Type == token.FLOAT) {
					fused := next.tok
					fused.Literal = "-" + fused.Literal
					out = append(out, elem{tok: fused})
					i += 2
					continue
				}
			}
		}
		out = append(out, el)
		i++
	}
	return out
}

func isOperatorElem(el elem) bool {
	if el.isChain() {
		return false
	}
	switch el.tok.Type {
	case token.OPERATOR, token.LESS, token.GREATER:
		return true
	}
	return false
}

// getPrecedence is QRunner::GetPrecedence's table. Every QLang operator is
// left-associative (QRunner::IsLeftAssociative always returns true), so
// Shunting-Yard only ever needs "pop while >=".
func getPrecedence(lit string) int {
	switch lit {
	case "||":
		return 1
	case "&&":
		return 2
	case "==", "!=":
		return 3
	case "<", ">", "<=", ">=":
		return 4
	case "+", "-":
		return 5
	case "*", "/":
		return 6
	default:
		return 0
	}
}

// evalShuntingYard runs infix-to-RPN conversion followed by RPN evaluation
// over a preprocessed elem list, matching QRunner::EvaluateExpression's
// second half.
func (e *Evaluator) evalShuntingYard(elems []elem) runtime.Value {
	var output []elem
	var ops []elem

	for _, el := range elems {
		switch {
		case !el.isChain() && el.tok.Type == token.LPAREN:
			ops = append(ops, el)
		case !el.isChain() && el.tok.Type == token.RPAREN:
			for len(ops) > 0 && !(ops[len(ops)-1].tok.Type == token.LPAREN) {
				output = append(output, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) > 0 {
				ops = ops[:len(ops)-1] // discard the matching LPAREN
			} else {
				e.runtimeError("mismatched parentheses in expression")
			}
		case isOperatorElem(el):
			prec := getPrecedence(el.tok.Literal)
			for len(ops) > 0 && isOperatorElem(ops[len(ops)-1]) && getPrecedence(ops[len(ops)-1].tok.Literal) >= prec {
				output = append(output, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, el)
		default:
			output = append(output, el)
		}
	}
	for len(ops) > 0 {
		output = append(output, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}

	var stack []runtime.Value
	for _, el := range output {
		if isOperatorElem(el) {
			if len(stack) < 2 {
				e.runtimeError("not enough operands for operator %q", el.tok.Literal)
				return runtime.NullValue
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, e.applyOperator(left, el.tok.Literal, right))
			continue
		}
		stack = append(stack, e.resolveElem(el))
	}
	if len(stack) == 0 {
		return runtime.NullValue
	}
	return stack[len(stack)-1]
}

func (e *Evaluator) resolveElem(el elem) runtime.Value {
	if el.isChain() {
		return e.evalChain(el.ch)
	}
	return e.tokenToValue(el.tok)
}

// tokenToValue converts a single literal/identifier token to a Value,
// matching QRunner::TokenToValue's non-chain arms.
func (e *Evaluator) tokenToValue(tok token.Token) runtime.Value {
	switch tok.Type {
	case token.INT:
		return parseIntLiteral(tok.Literal)
	case token.FLOAT:
		return parseFloatLiteral(tok.Literal)
	case token.STRING:
		return &runtime.String{Value: tok.Literal}
	case token.TRUE:
		return runtime.TrueValue
	case token.FALSE:
		return runtime.FalseValue
	case token.NULL:
		return runtime.NullValue
	case token.IDENT, token.THIS:
		if v, ok := e.env.Get(tok.Literal); ok {
			return v
		}
		return e.runtimeError("unknown variable %q", tok.Literal)
	default:
		return &runtime.String{Value: tok.Literal}
	}
}

// parseIntLiteral mirrors TokenToValue's T_INTEGER arm: a 0x/0X-prefixed
// literal is hex-parsed into an int32; otherwise try a 32-bit decimal
// parse, falling back to 64-bit, falling back to zero on total failure.
func parseIntLiteral(lit string) runtime.Value {
	neg := strings.HasPrefix(lit, "-")
	body := lit
	if neg {
		body = body[1:]
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		v, err := strconv.ParseInt(body[2:], 16, 64)
		if err != nil {
			return &runtime.Int32{Value: 0}
		}
		iv := int32(v)
		if neg {
			iv = -iv
		}
		return &runtime.Int32{Value: iv}
	}
	if v, err := strconv.ParseInt(lit, 10, 32); err == nil {
		return &runtime.Int32{Value: int32(v)}
	}
	if v, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return &runtime.Int64{Value: v}
	}
	return &runtime.Int32{Value: 0}
}

func parseFloatLiteral(lit string) runtime.Value {
	v, err := strconv.ParseFloat(lit, 32)
	if err != nil {
		return &runtime.Float32{Value: 0}
	}
	return &runtime.Float32{Value: float32(v)}
}

// evalChain resolves a fused member-access/call/constructor chain,
// matching QRunner::TokenToValue's T_NEW/T_IDENTIFIER-with-trailing-paren
// arms.
func (e *Evaluator) evalChain(ch *chain) runtime.Value {
	if ch.isNew {
		var args []runtime.Value
		if ch.isCall {
			args = e.evalArgGroups(ch.argGroups)
		}
		return e.createInstance(ch.path[0], args)
	}
	if ch.isCall {
		if len(ch.path) == 1 {
			return e.evalStandaloneCall(ch.path[0], ch.argGroups)
		}
		return e.evalDottedCall(ch.path, ch.argGroups)
	}
	return e.evalMemberAccess(ch.path)
}

// evalStandaloneCall is a bare `Name(args)` with no receiver.
func (e *Evaluator) evalStandaloneCall(name string, argGroups [][]token.Token) runtime.Value {
	return e.dispatchMethodCall(nil, name, e.evalArgGroups(argGroups))
}

// evalDottedCall is `a.b.Method(args)` or `super::Method(args)`, where
// path's last element is the method name and everything before it is the
// receiver chain (PreprocessMemberAccess fuses both into one chain).
func (e *Evaluator) evalDottedCall(path []string, argGroups [][]token.Token) runtime.Value {
	args := e.evalArgGroups(argGroups)
	return e.dispatchMethodCall(path[:len(path)-1], path[len(path)-1], args)
}

// evalMemberAccess is a non-call dotted chain `a.b.c`: traverse nested
// instances through all but the last segment, then read the final field.
func (e *Evaluator) evalMemberAccess(path []string) runtime.Value {
	if len(path) == 1 {
		if v, ok := e.env.Get(path[0]); ok {
			return v
		}
		return e.runtimeError("unknown variable %q", path[0])
	}
	recvVal, ok := e.env.Get(path[0])
	if !ok {
		return e.runtimeError("unknown variable %q", path[0])
	}
	inst, ok := recvVal.(*runtime.Instance)
	if !ok {
		return e.runtimeError("%q is not an instance", path[0])
	}
	for _, seg := range path[1 : len(path)-1] {
		child, ok := inst.GetNested(seg)
		if !ok {
			return e.runtimeError("unknown nested instance %q", seg)
		}
		inst = child
	}
	final := path[len(path)-1]
	v, ok := inst.GetMember(final)
	if !ok {
		return e.runtimeError("member %q not found on class %q", final, inst.Class.Name)
	}
	return v
}

func operatorMethodName(op string) string {
	switch op {
	case "+":
		return "Plus"
	case "-":
		return "Minus"
	case "*":
		return "Multiply"
	case "/":
		return "Divide"
	default:
		return ""
	}
}

func isFloatOperand(v runtime.Value) bool {
	switch v.(type) {
	case *runtime.Float32, *runtime.Float64:
		return true
	}
	return false
}

func isIntOperand(v runtime.Value) bool {
	switch v.(type) {
	case *runtime.Int32, *runtime.Int64:
		return true
	}
	return false
}

func isArithOp(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// applyOperator is QRunner::ApplyOperator's exact dispatch order: operator
// overloads on a left-hand instance first, then logical, comparison,
// string-concat, float, and int arithmetic, each gated on operand kind
// exactly as the original checks it (e.g. int arithmetic only inspects
// the left operand's kind, float results are always cast back to float32
// even when an operand was float64, division by zero returns a zero
// value rather than erroring).
func (e *Evaluator) applyOperator(left runtime.Value, op string, right runtime.Value) runtime.Value {
	if inst, ok := left.(*runtime.Instance); ok {
		if name := operatorMethodName(op); name != "" {
			if result, ok := e.callMethod(inst, name, []runtime.Value{right}); ok {
				return result
			}
		}
	}

	switch op {
	case "&&":
		return runtime.BoolOf(runtime.IsTruthy(left) && runtime.IsTruthy(right))
	case "||":
		return runtime.BoolOf(runtime.IsTruthy(left) || runtime.IsTruthy(right))
	}

	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		_, leftNull := left.(*runtime.Null)
		_, rightNull := right.(*runtime.Null)
		if leftNull || rightNull {
			switch op {
			case "==":
				return runtime.BoolOf(leftNull && rightNull)
			case "!=":
				return runtime.BoolOf(leftNull != rightNull)
			default:
				return runtime.FalseValue
			}
		}

		if ls, lok := left.(*runtime.String); lok {
			if rs, rok := right.(*runtime.String); rok {
				switch op {
				case "==":
					return runtime.BoolOf(ls.Value == rs.Value)
				case "!=":
					return runtime.BoolOf(ls.Value != rs.Value)
				case "<":
					return runtime.BoolOf(ls.Value < rs.Value)
				case ">":
					return runtime.BoolOf(ls.Value > rs.Value)
				case "<=":
					return runtime.BoolOf(ls.Value <= rs.Value)
				case ">=":
					return runtime.BoolOf(ls.Value >= rs.Value)
				}
			}
		}

		if lb, lok := left.(*runtime.Bool); lok {
			if rb, rok := right.(*runtime.Bool); rok && (op == "==" || op == "!=") {
				if op == "==" {
					return runtime.BoolOf(lb.Value == rb.Value)
				}
				return runtime.BoolOf(lb.Value != rb.Value)
			}
		}

		lf, rf := toFloat64(left), toFloat64(right)
		switch op {
		case "==":
			return runtime.BoolOf(lf == rf)
		case "!=":
			return runtime.BoolOf(lf != rf)
		case "<":
			return runtime.BoolOf(lf < rf)
		case ">":
			return runtime.BoolOf(lf > rf)
		case "<=":
			return runtime.BoolOf(lf <= rf)
		case ">=":
			return runtime.BoolOf(lf >= rf)
		}
	}

	if op == "+" {
		if ls, ok := left.(*runtime.String); ok {
			return &runtime.String{Value: ls.Value + right.String()}
		}
		if rs, ok := right.(*runtime.String); ok {
			return &runtime.String{Value: left.String() + rs.Value}
		}
	}

	if isArithOp(op) && (isFloatOperand(left) || isFloatOperand(right)) {
		l, r := toFloat64(left), toFloat64(right)
		var result float64
		switch op {
		case "+":
			result = l + r
		case "-":
			result = l - r
		case "*":
			result = l * r
		case "/":
			if r == 0 {
				return &runtime.Float32{Value: 0}
			}
			result = l / r
		}
		return &runtime.Float32{Value: float32(result)}
	}

	if isArithOp(op) && isIntOperand(left) {
		l, r := toInt64(left), toInt64(right)
		var result int64
		switch op {
		case "+":
			result = l + r
		case "-":
			result = l - r
		case "*":
			result = l * r
		case "/":
			if r == 0 {
				return &runtime.Int32{Value: 0}
			}
			result = l / r
		}
		return &runtime.Int32{Value: int32(result)}
	}

	return e.runtimeError("unsupported operation %q", op)
}
