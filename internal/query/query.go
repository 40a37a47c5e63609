// Package query filters topics with boolean expressions written in the
// expr language, for example:
//
//	len(links) > 2 && asset
//	name contains "React"
//	any(links, {# startsWith "Docs: "})
package query

import (
	"errors"
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("expression must not be empty")

// env is the variable set visible to expressions, one per topic.
type env struct {
	ID    string   `expr:"id"`
	Name  string   `expr:"name"`
	Links []string `expr:"links"`
	Image string   `expr:"image"`
	Asset bool     `expr:"asset"`
}

func newEnv(t types.Topic) env {
	return env{
		ID:    t.ID,
		Name:  t.Name,
		Links: t.Links,
		Image: t.Image,
		Asset: types.IsAssetImage(t.Image),
	}
}

// Program is a compiled filter expression.
type Program struct {
	source  string
	program *exprvm.Program
}

// Compile checks expression against the topic environment and requires a
// boolean result.
func Compile(expression string) (*Program, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	program, err := exprlang.Compile(expression, exprlang.Env(env{}), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Program{source: expression, program: program}, nil
}

// String returns the source expression.
func (p *Program) String() string {
	return p.source
}

// Match reports whether t satisfies the expression.
func (p *Program) Match(t types.Topic) (bool, error) {
	out, err := exprlang.Run(p.program, newEnv(t))
	if err != nil {
		return false, fmt.Errorf("evaluate %q on topic %s: %w", p.source, t.ID, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Filter returns the topics that match, keeping their order.
func (p *Program) Filter(topics []types.Topic) ([]types.Topic, error) {
	result := make([]types.Topic, 0, len(topics))
	for _, t := range topics {
		ok, err := p.Match(t)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, t)
		}
	}
	return result, nil
}
