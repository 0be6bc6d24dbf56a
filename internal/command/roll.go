package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/keshon/commandclient/pkg/cmd"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}

	ErrEmptyFormula   = errors.New("can't parse your formula, try something like `2d6+1d4*2-3`")
	ErrDivisionByZero = errors.New("division by zero is forbidden, even in games")
	ErrMissingOperand = errors.New("syntax error: operator without left operand")
	ErrDanglingOp     = errors.New("syntax error: operator without right operand")
	ErrMissingOp      = errors.New("syntax error: missing operator between terms")
	ErrTooBig         = fmt.Errorf("too big, results are capped at %d", maxValue)
)

const (
	maxDice     = 100
	maxSides    = 1000
	maxConstant = 1_000_000
	// maxValue bounds every intermediate and final result.
	maxValue = 1_000_000_000
)

type term struct {
	value int
	desc  string
	op    string
}

// Roller evaluates dice formulas such as 2d6+1d4*2-3.
type Roller struct {
	intn func(n int) int
}

// NewRoller returns a roller drawing from intn, or math/rand when nil.
func NewRoller(intn func(n int) int) *Roller {
	if intn == nil {
		intn = rand.Intn
	}
	return &Roller{intn: intn}
}

// Run rolls the formula given as arguments and replies with the result.
// Formula errors are answered in the channel rather than returned.
func (r *Roller) Run(_ context.Context, inv *cmd.Invocation) error {
	formula := strings.Join(inv.Args, "")
	total, detail, err := r.Roll(formula)
	if err != nil {
		return inv.Reply(err.Error())
	}
	return inv.Reply(fmt.Sprintf("🎲 `%s` → %s = **%d**", formula, detail, total))
}

// Roll evaluates formula. Multiplication and division bind to the term on
// their left before addition and subtraction are applied.
func (r *Roller) Roll(formula string) (int, string, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return 0, "", ErrEmptyFormula
	}

	var terms []term
	currentOp := "+"
	pendingOp := false
	for _, token := range tokens {
		if validOps[token] {
			if pendingOp {
				return 0, "", ErrDanglingOp
			}
			if len(terms) == 0 && (token == "*" || token == "/") {
				return 0, "", ErrMissingOperand
			}
			currentOp = token
			pendingOp = true
			continue
		}
		if len(terms) > 0 && !pendingOp {
			return 0, "", ErrMissingOp
		}
		val, desc, err := r.evaluateToken(token)
		if err != nil {
			return 0, "", fmt.Errorf("failed to evaluate `%s`: %w", token, err)
		}
		terms = append(terms, term{value: val, desc: desc, op: currentOp})
		pendingOp = false
	}
	if pendingOp {
		return 0, "", ErrDanglingOp
	}

	var merged []term
	for _, t := range terms {
		if t.op != "*" && t.op != "/" {
			merged = append(merged, t)
			continue
		}
		prev := merged[len(merged)-1]
		merged = merged[:len(merged)-1]

		var val int
		if t.op == "*" {
			if prev.value != 0 && abs(t.value) > maxValue/abs(prev.value) {
				return 0, "", ErrTooBig
			}
			val = prev.value * t.value
		} else {
			if t.value == 0 {
				return 0, "", ErrDivisionByZero
			}
			val = prev.value / t.value
		}
		merged = append(merged, term{
			value: val,
			desc:  fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
			op:    prev.op,
		})
	}

	total := 0
	var details []string
	for i, t := range merged {
		if i > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		} else if t.op == "-" {
			details = append(details, "-")
		}
		details = append(details, t.desc)
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
		if abs(total) > maxValue {
			return 0, "", ErrTooBig
		}
	}
	return total, strings.Join(details, ""), nil
}

func (r *Roller) evaluateToken(token string) (int, string, error) {
	if matches := diceRegex.FindStringSubmatch(token); matches != nil {
		count := 1
		if matches[1] != "" {
			n, err := strconv.Atoi(matches[1])
			if err != nil {
				return 0, "", errors.New("invalid dice count")
			}
			count = n
		}

		sides, err := strconv.Atoi(matches[2])
		if err != nil || sides < 2 {
			return 0, "", errors.New("invalid dice sides")
		}
		if count > maxDice || sides > maxSides {
			return 0, "", fmt.Errorf("too big, max %d dice, %d sides", maxDice, maxSides)
		}

		sum := 0
		rolls := make([]string, 0, count)
		for i := 0; i < count; i++ {
			v := r.intn(sides) + 1
			sum += v
			rolls = append(rolls, strconv.Itoa(v))
		}
		return sum, fmt.Sprintf("`%s` [%s]", token, strings.Join(rolls, ", ")), nil
	}

	num, err := strconv.Atoi(token)
	if errors.Is(err, strconv.ErrRange) || num > maxConstant {
		return 0, "", fmt.Errorf("too big, max constant %d", maxConstant)
	}
	if err != nil {
		return 0, "", errors.New("not a number or dice")
	}
	return num, fmt.Sprintf("`%d`", num), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
