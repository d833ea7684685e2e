package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orderlens-dev/orderlens/internal/memo"
	"github.com/orderlens-dev/orderlens/internal/split"
)

const (
	endMarker  = "DONE"
	skipMarker = "skip"
)

// prompter wraps line-oriented interaction with the user. It is embedded
// in session and replaced with a scripted reader in tests.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return prompter{in: scanner, out: out}
}

func (p prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// readLine prints a prompt and reads one line. ok is false on EOF.
func (p prompter) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// readMultiline reads lines until the end marker or EOF. A lone skip
// marker on the first line skips entry entirely.
func (p prompter) readMultiline() (text string, skipped bool) {
	var lines []string
	for p.in.Scan() {
		line := p.in.Text()
		if strings.TrimSpace(line) == endMarker {
			break
		}
		if len(lines) == 0 && strings.EqualFold(strings.TrimSpace(line), skipMarker) {
			return "", true
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), false
}

// promptCategory asks for a category by name (case-insensitive) until a
// known one is entered. An empty line cancels.
func (s *session) promptCategory(prompt string) (name, id string, ok bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return "", "", false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", "", false
		}

		if id, found := s.nameToID[strings.ToLower(line)]; found {
			return s.idToName[id], id, true
		}

		matches := s.matchCategoryPrefix(line)
		if len(matches) == 1 {
			return matches[0].Name, matches[0].ID, true
		}
		if len(matches) > 1 {
			s.printf("Ambiguous category %q:\n", line)
			for _, c := range matches {
				s.printf("  %s\n", c.Name)
			}
			continue
		}
		s.printf("Unknown category %q. Enter the full name, or leave empty to cancel.\n", line)
	}
}

// matchCategoryPrefix finds categories whose name or bare (group-less)
// name starts with the entered text.
func (s *session) matchCategoryPrefix(entered string) []struct{ Name, ID string } {
	lower := strings.ToLower(entered)
	var matches []struct{ Name, ID string }
	for _, c := range s.categories {
		name := strings.ToLower(c.Name)
		bare := name
		if i := strings.Index(name, ": "); i >= 0 {
			bare = name[i+2:]
		}
		if strings.HasPrefix(name, lower) || strings.HasPrefix(bare, lower) {
			matches = append(matches, struct{ Name, ID string }{c.Name, c.ID})
		}
	}
	return matches
}

// promptItemDetails collects manually entered item information for a memo
// when no order matched. Every field is optional; all fields left empty
// means no details.
func (s *session) promptItemDetails() *memo.ItemDetails {
	var details memo.ItemDetails

	title, _ := s.readLine("Item title (optional): ")
	details.Title = strings.TrimSpace(title)

	for {
		line, ok := s.readLine("Quantity (optional): ")
		line = strings.TrimSpace(line)
		if !ok || line == "" {
			break
		}
		n, err := strconv.Atoi(line)
		if err != nil || n <= 0 {
			s.printf("Enter a positive whole number.\n")
			continue
		}
		details.Quantity = n
		break
	}

	for {
		line, ok := s.readLine("Item price (optional): ")
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "$"))
		if !ok || line == "" {
			break
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(line, ",", ""))
		if err != nil || price.IsNegative() {
			s.printf("Enter a non-negative price like 29.99.\n")
			continue
		}
		details.Price = price
		details.HasPrice = true
		break
	}

	if details.Title == "" && details.Quantity == 0 && !details.HasPrice {
		return nil
	}
	return &details
}

// promptSplitAmount asks for a positive amount and allocates it against
// the remaining balance, re-prompting when the entry exceeds what is
// left. An empty line cancels.
func (s *session) promptSplitAmount(remaining int64) (int64, bool) {
	for {
		line, ok := s.readLine("Amount: ")
		if !ok {
			return 0, false
		}
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "$"))
		if line == "" {
			return 0, false
		}

		amount, err := decimal.NewFromString(line)
		if err != nil || !amount.IsPositive() {
			s.printf("Enter a positive amount like 12.34.\n")
			continue
		}

		allocated, err := split.Allocate(amount, remaining)
		var exceeded *split.ExceededError
		if errors.As(err, &exceeded) {
			s.printf("Amount exceeds remaining balance. Max: %s\n", exceeded.Max.StringFixed(2))
			continue
		}
		if err != nil {
			s.printf("Invalid amount: %v\n", err)
			continue
		}
		return allocated, true
	}
}
