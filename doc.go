// Package expressivo implements immutable polynomial expressions.
//
// An expression is built from nonnegative numbers, variables made of letters,
// and the binary operators + and *. "(1 + x) * (x * 1)" is a product of two
// subexpressions. Multiplication binds tighter than addition, and both
// operators associate to the left, so "a+b+c" is "(a+b)+c". There is no
// implicit multiplication: "3 x" is a syntax error.
//
// Expressions compare structurally. x+y and y+x are different expressions,
// and so are x*1 and x. Differentiate applies the sum and product rules
// literally and never simplifies its result.
//
package expressivo
