package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *Literal {
	return NewLiteral(IntegerValue{Val: value})
}

func Real(value float64) *Literal {
	return NewLiteral(RealValue{Val: value})
}

func Bool(value bool) *Literal {
	return NewLiteral(BooleanValue{Val: value})
}

func Chr(value rune) *Literal {
	return NewLiteral(CharValue{Val: value})
}

func Str(value string) *Literal {
	return NewLiteral(StringValue{Val: value})
}

// Expression helpers.

func Bin(op BinaryOperator, left, right Expression) *BinaryOp {
	return NewBinaryOp(op, left, right)
}

func Un(op UnaryOperator, operand Expression) *UnaryOp {
	return NewUnaryOp(op, operand)
}

func Index(name string, indices ...Expression) *ArrayIndex {
	return NewArrayIndex(ID(name), indices)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// Type helpers.

func Arr(element PrimitiveType, bounds ...Bound) *ArrayType {
	return NewArrayType(element, bounds)
}

func Dim(lower, upper int64) Bound {
	return Bound{Lower: Int(lower), Upper: Int(upper)}
}

func Param(name string, typ Type) *Parameter {
	return NewParameter(ID(name), typ)
}

// Statement helpers.

func Block(stmts ...Statement) []Statement {
	return stmts
}

func Declare(typ Type, names ...string) *VariableDecl {
	ids := make([]*Identifier, len(names))
	for i, n := range names {
		ids[i] = ID(n)
	}
	return NewVariableDecl(ids, typ)
}

func Const(name string, value *Literal) *ConstantDecl {
	return NewConstantDecl(ID(name), value)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentStmt {
	return NewAssignmentStmt(target, value)
}

func Output(values ...Expression) *OutputStmt {
	return NewOutputStmt(values)
}

func Input(target AssignmentTarget) *InputStmt {
	return NewInputStmt(target)
}

func Ret(value Expression) *ReturnStmt {
	return NewReturnStmt(value)
}

func CallProc(name string, args ...Expression) *ProcedureCallStmt {
	return NewProcedureCallStmt(ID(name), args)
}

func If(cond Expression, then []Statement, elseBody []Statement) *IfStmt {
	return NewIfStmt(cond, then, elseBody)
}

func For(name string, start, end, step Expression, body ...Statement) *ForStmt {
	return NewForStmt(ID(name), start, end, step, body)
}

func While(cond Expression, body ...Statement) *WhileStmt {
	return NewWhileStmt(cond, body)
}

func Repeat(cond Expression, body ...Statement) *RepeatUntilStmt {
	return NewRepeatUntilStmt(body, cond)
}

func Arm(value Expression, body ...Statement) *CaseArm {
	return NewCaseArm(value, nil, body)
}

func RangeArm(lower, upper Expression, body ...Statement) *CaseArm {
	return NewCaseArm(lower, upper, body)
}

func Case(selector Expression, arms []*CaseArm, otherwise ...Statement) *CaseStmt {
	return NewCaseStmt(selector, arms, otherwise)
}

func Proc(name string, params []*Parameter, body ...Statement) *ProcedureDecl {
	return NewProcedureDecl(ID(name), params, body)
}

func Fn(name string, params []*Parameter, returns Type, body ...Statement) *FunctionDecl {
	return NewFunctionDecl(ID(name), params, returns, body)
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}
