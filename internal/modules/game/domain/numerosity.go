package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

const (
	NumerosityOperands = 3
	maxQuotientFactor  = 10
)

// Apply folds the operator left to right over a, b, c. Division must be exact
// at every step; ok is false when it is not or when a divisor is zero.
func (op Operator) Apply(a, b, c int) (result int, ok bool) {
	switch op {
	case OpAdd:
		return a + b + c, true
	case OpSub:
		return a - b - c, true
	case OpMul:
		return a * b * c, true
	case OpDiv:
		if b == 0 || c == 0 || a%b != 0 {
			return 0, false
		}
		q := a / b
		if q%c != 0 {
			return 0, false
		}
		return q / c, true
	default:
		return 0, false
	}
}

type NumerosityParams struct {
	PoolSize int
	Low      int
	High     int
}

// ScaleNumerosity grows the pool by one per level and widens the number
// range from level 3.
func ScaleNumerosity(level int) NumerosityParams {
	level = clampLevel(level)
	params := NumerosityParams{PoolSize: 6 + level, Low: 1, High: 20}
	if level >= 3 {
		params.High = 50
	}
	return params
}

type NumerosityPuzzle struct {
	Operator Operator
	Target   int
	Operands [NumerosityOperands]int
	Pool     []int
}

func GenerateNumerosity(params NumerosityParams, rng *rand.Rand) (NumerosityPuzzle, error) {
	if params.PoolSize < NumerosityOperands || params.High < params.Low || params.Low < 1 {
		return NumerosityPuzzle{}, infeasible(KindNumerosity, "pool of %d over [%d,%d]", params.PoolSize, params.Low, params.High)
	}
	op := Operators[rng.IntN(len(Operators))]
	a, b, c, err := synthesizeOperands(op, params, rng)
	if err != nil {
		return NumerosityPuzzle{}, err
	}
	target, ok := op.Apply(a, b, c)
	if !ok {
		return NumerosityPuzzle{}, infeasible(KindNumerosity, "operands %d %s %d %s %d do not reduce", a, op, b, op, c)
	}

	pool := make([]int, 0, params.PoolSize)
	pool = append(pool, a, b, c)
	for len(pool) < params.PoolSize {
		pool = append(pool, between(rng, params.Low, params.High))
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	return NumerosityPuzzle{
		Operator: op,
		Target:   target,
		Operands: [NumerosityOperands]int{a, b, c},
		Pool:     pool,
	}, nil
}

func synthesizeOperands(op Operator, params NumerosityParams, rng *rand.Rand) (int, int, int, error) {
	lo, hi := params.Low, params.High
	half := max(2, hi/2)
	switch op {
	case OpAdd:
		return between(rng, lo, hi), between(rng, lo, hi), between(rng, lo, hi), nil
	case OpSub:
		b := between(rng, lo, hi)
		c := between(rng, lo, hi)
		return between(rng, b+c, b+c+(hi-lo)), b, c, nil
	case OpMul:
		return between(rng, 1, half), between(rng, 1, half), between(rng, 1, half), nil
	case OpDiv:
		for range maxDrawAttempts {
			b := between(rng, 1, half)
			c := between(rng, 1, half)
			a := between(rng, 1, maxQuotientFactor) * b * c
			if _, ok := OpDiv.Apply(a, b, c); ok {
				return a, b, c, nil
			}
		}
		return 0, 0, 0, infeasible(KindNumerosity, "no exact division after %d draws", maxDrawAttempts)
	default:
		return 0, 0, 0, infeasible(KindNumerosity, "unsupported operator %q", string(op))
	}
}

func (NumerosityPuzzle) Kind() Kind { return KindNumerosity }
func (NumerosityPuzzle) DisplayTime() time.Duration { return 0 }
func (p NumerosityPuzzle) Options() int { return len(p.Pool) }

// Solution picks the pool positions of the generated operands, in order.
func (p NumerosityPuzzle) Solution() Response {
	used := make([]bool, len(p.Pool))
	sel := make([]int, 0, NumerosityOperands)
	for _, want := range p.Operands {
		for i, v := range p.Pool {
			if !used[i] && v == want {
				used[i] = true
				sel = append(sel, i)
				break
			}
		}
	}
	return Response{Selection: sel}
}

// Evaluate recomputes the chain over the selected values in selection order.
func (p NumerosityPuzzle) Evaluate(r Response) Outcome {
	if len(r.Selection) != NumerosityOperands {
		return Outcome{Rejected: true, Detail: "Please select exactly 3 numbers."}
	}
	values := make([]int, NumerosityOperands)
	for i, idx := range r.Selection {
		if idx < 0 || idx >= len(p.Pool) {
			return Outcome{Rejected: true, Detail: fmt.Sprintf("No number at position %d.", idx+1)}
		}
		values[i] = p.Pool[idx]
	}
	result, ok := p.Operator.Apply(values[0], values[1], values[2])
	if ok && result == p.Target {
		return Outcome{Correct: true, Detail: "Correct!"}
	}
	got := "no result"
	if ok {
		got = fmt.Sprint(result)
	}
	return Outcome{Detail: fmt.Sprintf("Incorrect! Your answer: %v = %s, but the target was %d.", values, got, p.Target)}
}

func numerosityGame() Game {
	return NewGame(Rules{
		Kind:        KindNumerosity,
		Title:       "Numerosity",
		Summary:     "Pick three numbers that reach the target with the given operator.",
		TimeBudget:  180 * time.Second,
		OnWrong:     PolicyRetry,
		SelectLimit: NumerosityOperands,
	}, func(level int, rng *rand.Rand) (Puzzle, error) {
		return GenerateNumerosity(ScaleNumerosity(level), rng)
	})
}
