package ast

type NodeType string

const (
	NodeLiteral           NodeType = "Literal"
	NodeIdentifier        NodeType = "Identifier"
	NodeArrayIndex        NodeType = "ArrayIndex"
	NodeFunctionCall      NodeType = "FunctionCall"
	NodeUnaryOp           NodeType = "UnaryOp"
	NodeBinaryOp          NodeType = "BinaryOp"
	NodeArrayType         NodeType = "ArrayType"
	NodeParameter         NodeType = "Parameter"
	NodeVariableDecl      NodeType = "VariableDecl"
	NodeConstantDecl      NodeType = "ConstantDecl"
	NodeAssignmentStmt    NodeType = "AssignmentStmt"
	NodeProcedureCallStmt NodeType = "ProcedureCallStmt"
	NodeFunctionDecl      NodeType = "FunctionDecl"
	NodeProcedureDecl     NodeType = "ProcedureDecl"
	NodeIfStmt            NodeType = "IfStmt"
	NodeCaseArm           NodeType = "CaseArm"
	NodeCaseStmt          NodeType = "CaseStmt"
	NodeForStmt           NodeType = "ForStmt"
	NodeWhileStmt         NodeType = "WhileStmt"
	NodeRepeatUntilStmt   NodeType = "RepeatUntilStmt"
	NodeInputStmt         NodeType = "InputStmt"
	NodeOutputStmt        NodeType = "OutputStmt"
	NodeReturnStmt        NodeType = "ReturnStmt"
	NodeFileOpenStmt      NodeType = "FileOpenStmt"
	NodeFileReadStmt      NodeType = "FileReadStmt"
	NodeFileWriteStmt     NodeType = "FileWriteStmt"
	NodeFileCloseStmt     NodeType = "FileCloseStmt"
	NodeProgram           NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Pos() Position
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Position Position `json:"pos"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType   { return n.Type }
func (n nodeImpl) Pos() Position        { return n.Position }
func (n *nodeImpl) setPos(pos Position) { n.Position = pos }
func (nodeImpl) isNode()                {}

// SetPos annotates the node with the position of its leading token.
func SetPos(node Node, pos Position) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setPos(Position) }); ok {
		setter.setPos(pos)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// AssignmentTarget is either a plain identifier or an indexed array element.
type AssignmentTarget interface {
	Expression
	// TargetName is the variable the target writes to.
	TargetName() *Identifier
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Expressions

type Literal struct {
	nodeImpl
	expressionMarker

	Value Value `json:"value"`
}

func NewLiteral(value Value) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

func (id *Identifier) TargetName() *Identifier { return id }

type ArrayIndex struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Target  *Identifier  `json:"target"`
	Indices []Expression `json:"indices"`
}

func NewArrayIndex(target *Identifier, indices []Expression) *ArrayIndex {
	return &ArrayIndex{nodeImpl: newNodeImpl(NodeArrayIndex), Target: target, Indices: indices}
}

func (a *ArrayIndex) TargetName() *Identifier { return a.Target }

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type UnaryOperator string

const (
	UnaryNegate UnaryOperator = "-"
	UnaryPlus   UnaryOperator = "+"
	UnaryNot    UnaryOperator = "NOT"
)

type UnaryOp struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryOp(operator UnaryOperator, operand Expression) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp), Operator: operator, Operand: operand}
}

type BinaryOperator string

const (
	BinaryAdd          BinaryOperator = "+"
	BinarySubtract     BinaryOperator = "-"
	BinaryMultiply     BinaryOperator = "*"
	BinaryDivide       BinaryOperator = "/"
	BinaryPower        BinaryOperator = "^"
	BinaryConcat       BinaryOperator = "&"
	BinaryEqual        BinaryOperator = "="
	BinaryNotEqual     BinaryOperator = "<>"
	BinaryLess         BinaryOperator = "<"
	BinaryLessEqual    BinaryOperator = "<="
	BinaryGreater      BinaryOperator = ">"
	BinaryGreaterEqual BinaryOperator = ">="
	BinaryAnd          BinaryOperator = "AND"
	BinaryOr           BinaryOperator = "OR"
)

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryOp(operator BinaryOperator, left, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Operator: operator, Left: left, Right: right}
}

// Program is the tree root.

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}
