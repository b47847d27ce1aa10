package domain

import "fmt"

type ActionKind string

const (
	ActionStartLevel      ActionKind = "start"
	ActionToggleSelection ActionKind = "toggle"
	ActionMoveTile        ActionKind = "move"
	ActionSubmitAnswer    ActionKind = "submit"
	ActionTick            ActionKind = "tick"
)

type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Action is one user or timer event dispatched into a session.
type Action struct {
	Kind      ActionKind
	Index     int
	Direction Direction
	Answer    string
}

func StartLevel() Action { return Action{Kind: ActionStartLevel} }
func Toggle(index int) Action { return Action{Kind: ActionToggleSelection, Index: index} }
func Submit(answer string) Action { return Action{Kind: ActionSubmitAnswer, Answer: answer} }
func Tick() Action { return Action{Kind: ActionTick} }
func Move(index int, dir Direction) Action {
	return Action{Kind: ActionMoveTile, Index: index, Direction: dir}
}

func (a Action) Validate() error {
	switch a.Kind {
	case ActionStartLevel, ActionSubmitAnswer, ActionTick:
		return nil
	case ActionToggleSelection:
		if a.Index < 0 {
			return fmt.Errorf("selection index must be non-negative, got %d", a.Index)
		}
		return nil
	case ActionMoveTile:
		if a.Index < 0 {
			return fmt.Errorf("tile index must be non-negative, got %d", a.Index)
		}
		if a.Direction != DirLeft && a.Direction != DirRight {
			return fmt.Errorf("unsupported direction %q", string(a.Direction))
		}
		return nil
	default:
		return fmt.Errorf("unsupported action %q", string(a.Kind))
	}
}
