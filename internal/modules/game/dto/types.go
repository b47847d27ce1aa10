package dto

import "time"

type HandleOutput struct {
	SessionID string
	Game      string
	Created   bool
}

// ActionInput is one dispatched action. Kind is start|toggle|move|submit|tick.
type ActionInput struct {
	SessionID string
	Kind      string
	Index     int
	Direction string
	Answer    string
}

type SnapshotOutput struct {
	SessionID     string
	Game          string
	Title         string
	Stage         string
	Level         int
	MaxLevel      int
	Score         int
	TimeLeft      time.Duration
	PhaseLeft     time.Duration
	ResultMessage string
	EndReason     string
	Seed          int64
	Selection     []int
	Puzzle        PuzzleView
}

// PuzzleView is the render data of the live puzzle. Only the fields of the
// snapshot's game are populated.
type PuzzleView struct {
	Live   bool
	Hidden bool

	Sequence string

	Operator string
	Target   int
	Pool     []int

	Cubes []CubeView

	Tiles []TileView

	Shapes []SymbolView
	Probe  *SymbolView
}

type SymbolView struct {
	Shape string
	Color string
}

type CubeView struct {
	Pattern  []SymbolView
	Rotation int
	Mirror   bool
	Selected bool
}

type TileView struct {
	ID        int
	Type      string
	OpenEdges []string
}

type GameInfo struct {
	Game       string
	Title      string
	Summary    string
	TimeBudget time.Duration
	MaxLevel   int
	Memorize   bool
	OnWrong    string
}

type PreviewInput struct {
	Game  string
	Level int
	Seed  int64
}

type PreviewOutput struct {
	Game     string
	Level    int
	Seed     int64
	Params   string
	Puzzle   PuzzleView
	Solution string
}
