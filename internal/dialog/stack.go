package dialog

// StepNotStarted is the step index of an instance whose dialog has not run
// its first step yet.
const StepNotStarted = -1

// Instance is one entry on the dialog stack: a running dialog plus its
// local state. State must stay JSON-encodable; it round-trips through the
// store between turns.
type Instance struct {
	DialogID  string         `json:"dialog_id"`
	StepIndex int            `json:"step_index"`
	State     map[string]any `json:"state,omitempty"`
}

// Stack is the ordered set of active dialog instances for one conversation.
// The last element is the active instance.
type Stack struct {
	Instances []*Instance `json:"instances,omitempty"`
}

// Push makes inst the active instance.
func (s *Stack) Push(inst *Instance) {
	s.Instances = append(s.Instances, inst)
}

// Pop removes and returns the active instance, or nil when the stack is
// empty.
func (s *Stack) Pop() *Instance {
	if len(s.Instances) == 0 {
		return nil
	}
	inst := s.Instances[len(s.Instances)-1]
	s.Instances = s.Instances[:len(s.Instances)-1]
	return inst
}

// Top returns the active instance without removing it, or nil.
func (s *Stack) Top() *Instance {
	if len(s.Instances) == 0 {
		return nil
	}
	return s.Instances[len(s.Instances)-1]
}

// Clear empties the stack unconditionally.
func (s *Stack) Clear() {
	s.Instances = nil
}

// Depth returns the number of active instances.
func (s *Stack) Depth() int {
	return len(s.Instances)
}
