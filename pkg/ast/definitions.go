package ast

// Declarations

type VariableDecl struct {
	nodeImpl
	statementMarker

	Names []*Identifier `json:"names"`
	Type  Type          `json:"varType"`
}

func NewVariableDecl(names []*Identifier, typ Type) *VariableDecl {
	return &VariableDecl{nodeImpl: newNodeImpl(NodeVariableDecl), Names: names, Type: typ}
}

type ConstantDecl struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value *Literal    `json:"value"`
}

func NewConstantDecl(name *Identifier, value *Literal) *ConstantDecl {
	return &ConstantDecl{nodeImpl: newNodeImpl(NodeConstantDecl), Name: name, Value: value}
}

// Parameter is a positional `name : type` pair of a subroutine signature.
type Parameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
	Type Type        `json:"paramType"`
}

func NewParameter(name *Identifier, typ Type) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: typ}
}

type FunctionDecl struct {
	nodeImpl
	statementMarker

	Name       *Identifier  `json:"name"`
	Params     []*Parameter `json:"params"`
	ReturnType Type         `json:"returnType"`
	Body       []Statement  `json:"body"`
}

func NewFunctionDecl(name *Identifier, params []*Parameter, returnType Type, body []Statement) *FunctionDecl {
	return &FunctionDecl{nodeImpl: newNodeImpl(NodeFunctionDecl), Name: name, Params: params, ReturnType: returnType, Body: body}
}

type ProcedureDecl struct {
	nodeImpl
	statementMarker

	Name   *Identifier  `json:"name"`
	Params []*Parameter `json:"params"`
	Body   []Statement  `json:"body"`
}

func NewProcedureDecl(name *Identifier, params []*Parameter, body []Statement) *ProcedureDecl {
	return &ProcedureDecl{nodeImpl: newNodeImpl(NodeProcedureDecl), Name: name, Params: params, Body: body}
}

// Simple statements

type AssignmentStmt struct {
	nodeImpl
	statementMarker

	Target AssignmentTarget `json:"target"`
	Value  Expression       `json:"value"`
}

func NewAssignmentStmt(target AssignmentTarget, value Expression) *AssignmentStmt {
	return &AssignmentStmt{nodeImpl: newNodeImpl(NodeAssignmentStmt), Target: target, Value: value}
}

type ProcedureCallStmt struct {
	nodeImpl
	statementMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewProcedureCallStmt(callee *Identifier, args []Expression) *ProcedureCallStmt {
	return &ProcedureCallStmt{nodeImpl: newNodeImpl(NodeProcedureCallStmt), Callee: callee, Arguments: args}
}

type InputStmt struct {
	nodeImpl
	statementMarker

	Target AssignmentTarget `json:"target"`
}

func NewInputStmt(target AssignmentTarget) *InputStmt {
	return &InputStmt{nodeImpl: newNodeImpl(NodeInputStmt), Target: target}
}

type OutputStmt struct {
	nodeImpl
	statementMarker

	Values []Expression `json:"values"`
}

func NewOutputStmt(values []Expression) *OutputStmt {
	return &OutputStmt{nodeImpl: newNodeImpl(NodeOutputStmt), Values: values}
}

type ReturnStmt struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturnStmt(value Expression) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Value: value}
}

// Control flow

type IfStmt struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Then      []Statement `json:"then"`
	Else      []Statement `json:"else,omitempty"`
}

func NewIfStmt(condition Expression, then, elseBody []Statement) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, Then: then, Else: elseBody}
}

// CaseArm matches a single value, or the inclusive range Value..Upper when Upper is set.
type CaseArm struct {
	nodeImpl

	Value Expression  `json:"value"`
	Upper Expression  `json:"upper,omitempty"`
	Body  []Statement `json:"body"`
}

func NewCaseArm(value, upper Expression, body []Statement) *CaseArm {
	return &CaseArm{nodeImpl: newNodeImpl(NodeCaseArm), Value: value, Upper: upper, Body: body}
}

type CaseStmt struct {
	nodeImpl
	statementMarker

	Selector  Expression  `json:"selector"`
	Arms      []*CaseArm  `json:"arms"`
	Otherwise []Statement `json:"otherwise,omitempty"`
}

func NewCaseStmt(selector Expression, arms []*CaseArm, otherwise []Statement) *CaseStmt {
	return &CaseStmt{nodeImpl: newNodeImpl(NodeCaseStmt), Selector: selector, Arms: arms, Otherwise: otherwise}
}

type ForStmt struct {
	nodeImpl
	statementMarker

	Variable *Identifier `json:"variable"`
	Start    Expression  `json:"start"`
	End      Expression  `json:"end"`
	Step     Expression  `json:"step,omitempty"`
	Body     []Statement `json:"body"`
}

func NewForStmt(variable *Identifier, start, end, step Expression, body []Statement) *ForStmt {
	return &ForStmt{nodeImpl: newNodeImpl(NodeForStmt), Variable: variable, Start: start, End: end, Step: step, Body: body}
}

type WhileStmt struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Body      []Statement `json:"body"`
}

func NewWhileStmt(condition Expression, body []Statement) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

type RepeatUntilStmt struct {
	nodeImpl
	statementMarker

	Body      []Statement `json:"body"`
	Condition Expression  `json:"condition"`
}

func NewRepeatUntilStmt(body []Statement, condition Expression) *RepeatUntilStmt {
	return &RepeatUntilStmt{nodeImpl: newNodeImpl(NodeRepeatUntilStmt), Body: body, Condition: condition}
}

// File statements. They parse and execute as no-ops.

type FileMode string

const (
	FileModeRead   FileMode = "READ"
	FileModeWrite  FileMode = "WRITE"
	FileModeAppend FileMode = "APPEND"
)

type FileOpenStmt struct {
	nodeImpl
	statementMarker

	File Expression `json:"file"`
	Mode FileMode   `json:"mode"`
}

func NewFileOpenStmt(file Expression, mode FileMode) *FileOpenStmt {
	return &FileOpenStmt{nodeImpl: newNodeImpl(NodeFileOpenStmt), File: file, Mode: mode}
}

type FileReadStmt struct {
	nodeImpl
	statementMarker

	File   Expression       `json:"file"`
	Target AssignmentTarget `json:"target"`
}

func NewFileReadStmt(file Expression, target AssignmentTarget) *FileReadStmt {
	return &FileReadStmt{nodeImpl: newNodeImpl(NodeFileReadStmt), File: file, Target: target}
}

type FileWriteStmt struct {
	nodeImpl
	statementMarker

	File  Expression `json:"file"`
	Value Expression `json:"value"`
}

func NewFileWriteStmt(file, value Expression) *FileWriteStmt {
	return &FileWriteStmt{nodeImpl: newNodeImpl(NodeFileWriteStmt), File: file, Value: value}
}

type FileCloseStmt struct {
	nodeImpl
	statementMarker

	File Expression `json:"file"`
}

func NewFileCloseStmt(file Expression) *FileCloseStmt {
	return &FileCloseStmt{nodeImpl: newNodeImpl(NodeFileCloseStmt), File: file}
}
