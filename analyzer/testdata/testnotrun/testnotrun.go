// Package testnotrun has tests that are not run.
package testnotrun

func Add(a, b int) int { return a + b }
