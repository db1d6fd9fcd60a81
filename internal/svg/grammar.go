package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// Command is one parsed path command: a letter and its numeric arguments.
// Repeated argument groups (e.g. "L 1 2 3 4") stay in a single Command.
type Command struct {
	Letter byte
	Args   []float64
}

// argCounts maps each command letter to the size of one argument group.
// Lowercase (relative) forms take the same counts.
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'T': 2,
	'H': 1, 'V': 1,
	'C': 6,
	'S': 4, 'Q': 4,
	'A': 7,
	'Z': 0,
}

// ParsePath parses SVG path data into its command sequence.
//
// The full command set {M,L,H,V,C,S,Q,T,A,Z} is accepted in absolute and
// relative form so externally authored paths can round-trip, even though the
// generator only ever emits absolute M, L, C, Q and Z. Every numeric token
// must be finite; argument counts must be a positive multiple of the
// command's group size; the path must start with a moveto.
func ParsePath(d string) ([]Command, error) {
	var cmds []Command
	i := 0
	n := len(d)

	skipSeparators := func() {
		for i < n && (d[i] == ' ' || d[i] == '\t' || d[i] == '\n' || d[i] == '\r' || d[i] == ',') {
			i++
		}
	}

	readNumber := func() (float64, error) {
		start := i
		if i < n && (d[i] == '+' || d[i] == '-') {
			i++
		}
		for i < n && (d[i] >= '0' && d[i] <= '9') {
			i++
		}
		if i < n && d[i] == '.' {
			i++
			for i < n && (d[i] >= '0' && d[i] <= '9') {
				i++
			}
		}
		if i < n && (d[i] == 'e' || d[i] == 'E') {
			i++
			if i < n && (d[i] == '+' || d[i] == '-') {
				i++
			}
			for i < n && (d[i] >= '0' && d[i] <= '9') {
				i++
			}
		}
		tok := d[start:i]
		if tok == "" || tok == "+" || tok == "-" {
			return 0, fmt.Errorf("expected number at offset %d", start)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q at offset %d", tok, start)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite number %q at offset %d", tok, start)
		}
		return v, nil
	}

	for {
		skipSeparators()
		if i >= n {
			break
		}

		letter := d[i]
		count, ok := argCounts[upper(letter)]
		if !ok {
			return nil, fmt.Errorf("unknown command %q at offset %d", string(letter), i)
		}
		if len(cmds) == 0 && upper(letter) != 'M' {
			return nil, fmt.Errorf("path must start with a moveto, got %q", string(letter))
		}
		i++

		cmd := Command{Letter: letter}
		if count > 0 {
			for {
				skipSeparators()
				if i >= n || isCommandLetter(d[i]) {
					break
				}
				v, err := readNumber()
				if err != nil {
					return nil, err
				}
				cmd.Args = append(cmd.Args, v)
			}
			if len(cmd.Args) == 0 || len(cmd.Args)%count != 0 {
				return nil, fmt.Errorf("command %q takes groups of %d arguments, got %d",
					string(letter), count, len(cmd.Args))
			}
		}
		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		return nil, fmt.Errorf("empty path data")
	}
	return cmds, nil
}

// IsValidPath reports whether d parses under the path-command grammar.
func IsValidPath(d string) bool {
	_, err := ParsePath(d)
	return err == nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCommandLetter(c byte) bool {
	_, ok := argCounts[upper(c)]
	return ok
}

// String reassembles the command into path-data text with the given decimal
// precision.
func (c Command) String(precision int) string {
	var b strings.Builder
	b.WriteByte(c.Letter)
	for _, v := range c.Args {
		b.WriteByte(' ')
		b.WriteString(vectorize.FormatCoord(v, precision))
	}
	return b.String()
}
