//go:build ruleguard
// +build ruleguard

// Package gorules holds gocritic ruleguard checks run by the linter.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func errorfWrap(m dsl.Matcher) {
	m.Match(`fmt.Errorf($format, $*_, $err)`).
		Where(m["err"].Type.Is("error") && !m["format"].Text.Matches(`%w`)).
		Report(`wrap $err with %w`)
}

func timeSince(m dsl.Matcher) {
	m.Match(`time.Now().Sub($t)`).
		Suggest(`time.Since($t)`)
}

func stdLogger(m dsl.Matcher) {
	m.Match(`log.Printf($*_)`, `log.Println($*_)`, `log.Print($*_)`).
		Where(m.File().Imports("log")).
		Report(`use hclog.Logger instead of the standard log package`)
}

func uncheckedTypeAssertion(m dsl.Matcher) {
	m.Match(`$x := $v.($t)`).
		Where(!m.File().Name.Matches(`_test\.go$`) && !m.File().Name.Matches(`test_mocks\.go$`)).
		Report(`use the two value form of the type assertion on $v`)
}
