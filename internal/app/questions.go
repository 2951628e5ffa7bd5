package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrQuestionsNotFound means the questions file does not exist.
	ErrQuestionsNotFound = errors.New("questions file not found")
	// ErrNoQuestions means the file held nothing but blank lines.
	ErrNoQuestions = errors.New("no questions in file")
)

// LoadQuestions reads one problem statement per line, trimming whitespace
// and skipping blank lines. Index follows the position among kept lines.
func LoadQuestions(path string) ([]Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrQuestionsNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	var problems []Problem
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		problems = append(problems, Problem{Index: len(problems) + 1, Statement: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, path)
	}
	return problems, nil
}
