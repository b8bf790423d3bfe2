package app

// Operation is one of the lock-protected commands. The set is closed:
// initialization has its own entry point and cannot be expressed as an
// Operation, so the dispatcher never has to reject it at runtime.
type Operation interface {
	isOperation()
}

// NewOp adds a login to the database interactively.
type NewOp struct{}

// QueryOp prints the named login, or lists every stored login when
// Name is empty.
type QueryOp struct {
	Name string
}

// RemoveOp deletes a login interactively after confirmation.
type RemoveOp struct{}

// ServeOp serves the database over HTTP until interrupted.
type ServeOp struct{}

func (NewOp) isOperation()    {}
func (QueryOp) isOperation()  {}
func (RemoveOp) isOperation() {}
func (ServeOp) isOperation()  {}
