/*
Package dsl provides a Go DSL for programmatically constructing animation flow graphs.

It produces the same domain.Graph a YAML, JSON or TOML document would, using a
fluent builder instead of an external file. This is useful for graphs generated
at runtime and for tests.

Example usage:

	b := dsl.New("locomotion").
		Param("IsMoving", "bool", false)

	b.Add("idle").Looping("idle").Initial().
		When("run", dsl.Is("IsMoving", true))

	b.Add("run").Looping("run").
		When("idle", dsl.Not(dsl.Is("IsMoving", true)))

	b.Add("attack").OneTime("swing").
		When("idle", dsl.Done())

	loader, err := b.Build()
	// ... pass loader to animflow.NewFromLoader(...)
*/
package dsl
