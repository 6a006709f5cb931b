// Package compiler turns authored graph documents into runtime states.
//
// Parser decodes JSON, YAML or TOML into a domain.Graph. FlowGraph repairs it
// (ids, initial state, dangling transitions), compiles condition trees and
// installs the result on a runtime.Controller.
package compiler
