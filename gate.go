package qsim

/*
Gate is a node of the gate tree handed to the engine by the circuit layer.
The tree is closed: a node is a *TargetGate leaf or one of the two wrappers,
and Extract folds it with a type switch.
*/
type Gate interface {
	isGate()
}

// TargetGate is a leaf: a base matrix acting on its own target qubits.
type TargetGate struct {
	Name    string
	Matrix  Matrix
	Targets []int
}

// ControlledGate applies Gate only when every control qubit is 1.
type ControlledGate struct {
	Gate     Gate
	Controls []int
}

/*
OracleGate applies Gate only when the control qubits match one of the
TruthTable entries. The first character of an entry belongs to the first
control.
*/
type OracleGate struct {
	TruthTable []string
	Controls   []int
	Gate       Gate
}

func (*TargetGate) isGate()     {}
func (*ControlledGate) isGate() {}
func (*OracleGate) isGate()     {}

func NewTargetGate(name string, m Matrix, targets ...int) *TargetGate {
	return &TargetGate{Name: name, Matrix: m, Targets: targets}
}

func NewControlledGate(gate Gate, controls ...int) *ControlledGate {
	return &ControlledGate{Gate: gate, Controls: controls}
}

func NewOracleGate(truthTable []string, controls []int, gate Gate) *OracleGate {
	return &OracleGate{TruthTable: truthTable, Controls: controls, Gate: gate}
}
