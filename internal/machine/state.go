package machine

// State is one member of an ordered state sequence. Identity is the
// state's position within its sequence plus a human-readable name used
// for lookup. Concrete states opt into lifecycle notifications by
// implementing any of the capability interfaces below.
type State interface {
	Name() string
}

// Enterable is implemented by states that want a notification when they
// become the active state.
type Enterable interface {
	Enter()
}

// Exitable is implemented by states that want a notification when they
// stop being the active state.
type Exitable interface {
	Exit()
}

// Tickable is implemented by states that want a per-frame callback while
// they are the active state.
type Tickable interface {
	Tick()
}

var (
	_ State     = (*FuncState)(nil)
	_ Enterable = (*FuncState)(nil)
	_ Exitable  = (*FuncState)(nil)
	_ Tickable  = (*FuncState)(nil)
)

// FuncState is a State assembled from closures. Nil hooks are skipped.
type FuncState struct {
	name    string
	OnEnter func()
	OnExit  func()
	OnTick  func()
}

// NewFuncState creates a FuncState with the given name and no hooks.
// Hooks are assigned directly on the returned struct.
func NewFuncState(name string) *FuncState {
	return &FuncState{name: name}
}

// Name returns the state's name.
func (f *FuncState) Name() string {
	return f.name
}

// Enter runs the OnEnter hook, if any.
func (f *FuncState) Enter() {
	if f.OnEnter != nil {
		f.OnEnter()
	}
}

// Exit runs the OnExit hook, if any.
func (f *FuncState) Exit() {
	if f.OnExit != nil {
		f.OnExit()
	}
}

// Tick runs the OnTick hook, if any.
func (f *FuncState) Tick() {
	if f.OnTick != nil {
		f.OnTick()
	}
}
