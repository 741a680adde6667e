// Package view builds the ordered, display-oriented projection of a lead
// snapshot. It is pure: same input, same output, no side effects.
package view
