package compiler

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/fauto/internal/codegen"
)

// generateFile emits the matcher type, its methods and the two table
// functions for the built DFA.
func (c *Compiler) generateFile() {
	name := c.config.Name
	c.file.HeaderComment(fmt.Sprintf("Code generated by fauto for pattern: %s", c.config.Pattern))
	c.file.HeaderComment("DO NOT EDIT.")

	c.file.Commentf("%s matches %s.", name, c.config.Pattern)
	c.file.Type().Id(name).Struct()
	c.file.Line()
	c.file.Var().Id(codegen.CompiledName(name)).Op("=").Id(name).Values()
	c.file.Line()

	c.logger.Log("Generating MatchString/MatchBytes/SearchString (states: %d)", len(c.order))

	c.file.Comment("MatchString reports whether input as a whole is accepted.")
	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(c.matchBody(jen.Id(codegen.InputName))...)

	c.file.Comment("MatchBytes reports whether input as a whole is accepted.")
	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(c.matchBody(jen.String().Call(jen.Id(codegen.InputName)))...)

	c.file.Comment("SearchString reports whether some prefix of input, possibly empty, is accepted.")
	c.method("SearchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(c.searchBody()...)

	c.generateStepFunc()
	c.generateAcceptFunc()
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// stepCall renders `state, ok = step(state, c)`.
func (c *Compiler) stepCall() *jen.Statement {
	return jen.List(jen.Id(codegen.StateName), jen.Id(codegen.OkName)).Op("=").
		Id(codegen.StepFuncName(c.config.Name)).
		Call(jen.Id(codegen.StateName), jen.Id(codegen.LabelName))
}

func (c *Compiler) acceptCall() *jen.Statement {
	return jen.Id(codegen.AcceptFuncName(c.config.Name)).Call(jen.Id(codegen.StateName))
}

func (c *Compiler) matchBody(input jen.Code) []jen.Code {
	return []jen.Code{
		jen.Id(codegen.StateName).Op(":=").Lit(codegen.StartID),
		jen.Var().Id(codegen.OkName).Bool(),
		jen.For(jen.List(jen.Id("_"), jen.Id(codegen.LabelName)).Op(":=").Range().Add(input)).Block(
			jen.If(c.stepCall(), jen.Op("!").Id(codegen.OkName)).Block(
				jen.Return(jen.False()),
			),
		),
		jen.Return(c.acceptCall()),
	}
}

func (c *Compiler) searchBody() []jen.Code {
	return []jen.Code{
		jen.Id(codegen.StateName).Op(":=").Lit(codegen.StartID),
		jen.Var().Id(codegen.OkName).Bool(),
		jen.For(jen.List(jen.Id("_"), jen.Id(codegen.LabelName)).Op(":=").Range().Id(codegen.InputName)).Block(
			jen.If(c.acceptCall()).Block(
				jen.Return(jen.True()),
			),
			jen.If(c.stepCall(), jen.Op("!").Id(codegen.OkName)).Block(
				jen.Return(jen.False()),
			),
		),
		jen.Return(c.acceptCall()),
	}
}

// generateStepFunc emits the transition table as nested switches. Labels
// sharing a destination share a case; the fallback becomes the code after
// the inner switch.
func (c *Compiler) generateStepFunc() {
	var cases []jen.Code
	for id, s := range c.order {
		var body []jen.Code

		var dests []int
		labels := make(map[int][]jen.Code)
		for l := range c.dfa.Labels(s) {
			to, _ := c.dfa.Transition(s, l)
			dest := c.ids[to]
			if _, ok := labels[dest]; !ok {
				dests = append(dests, dest)
			}
			labels[dest] = append(labels[dest], jen.LitRune(l))
		}
		if len(dests) > 0 {
			inner := make([]jen.Code, 0, len(dests))
			for _, dest := range dests {
				inner = append(inner, jen.Case(labels[dest]...).Block(
					jen.Return(jen.Lit(dest), jen.True()),
				))
			}
			body = append(body, jen.Switch(jen.Id(codegen.LabelName)).Block(inner...))
		}

		if to, ok := c.dfa.Fallback(s); ok {
			body = append(body, jen.Return(jen.Lit(c.ids[to]), jen.True()))
		}
		if len(body) == 0 {
			continue
		}
		cases = append(cases, jen.Case(jen.Lit(id)).Block(body...))
	}

	var block []jen.Code
	if len(cases) > 0 {
		block = append(block, jen.Switch(jen.Id(codegen.StateName)).Block(cases...))
	}
	block = append(block, jen.Return(jen.Id(codegen.StateName), jen.False()))

	c.file.Func().Id(codegen.StepFuncName(c.config.Name)).
		Params(jen.Id(codegen.StateName).Int(), jen.Id(codegen.LabelName).Rune()).
		Params(jen.Int(), jen.Bool()).
		Block(block...)
}

func (c *Compiler) generateAcceptFunc() {
	var accepting []jen.Code
	for id, s := range c.order {
		if c.dfa.IsAccept(s) {
			accepting = append(accepting, jen.Lit(id))
		}
	}

	var block []jen.Code
	if len(accepting) > 0 {
		block = append(block, jen.Switch(jen.Id(codegen.StateName)).Block(
			jen.Case(accepting...).Block(jen.Return(jen.True())),
		))
	}
	block = append(block, jen.Return(jen.False()))

	c.file.Func().Id(codegen.AcceptFuncName(c.config.Name)).
		Params(jen.Id(codegen.StateName).Int()).
		Params(jen.Bool()).
		Block(block...)
}
