// Package lkit implements a small embeddable prefix-notation expression
// language over tagged scalar values.
//
// A program is a parenthesized form whose head names a registered function
// and whose remaining tokens are constants, variable references, or nested
// forms, e.g. "(+ (max a b) 2 pi)". Compiling a source string builds an
// expression tree; evaluating the tree re-evaluates every node on each call,
// so variables updated by the host between calls are observed immediately.
//
// Values carry one of five variants: undefined, bool, int, double, or
// timestamp. Arithmetic stays in the domain of the left operand, and an
// undefined operand propagates rather than raising an error. Fatal problems
// are confined to compilation; evaluation never fails, it goes undefined.
//
// Variables let you parse an expression once and evaluate it for many
// inputs, and the set-form "(set name value)" defines them from source.
package lkit
