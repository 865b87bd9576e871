// Package value classifies and converts the dynamically typed values that flow
// between Go code and compiled expressions.
//
// Every value produced or consumed by an expression belongs to exactly one
// [Kind]: [Null], [Bool], [Integer], [Float], [String], [Array], or [Object].
// The conversion functions ([ToInt], [ToFloat], [ToBool], [ToText]) are total:
// they accept any input, including no input at all, and always return a
// well-defined result instead of an error.
//
// # Text Forms
//
// Numbers are rendered without exponents. Floating-point values use the
// shortest decimal that round-trips, so 42.0 renders as "42" and the
// non-finite values render as "NaN", "+Inf", and "-Inf".
//
// Arrays and objects render as compact JSON without HTML escaping. When a
// container cannot be encoded (for example, it holds a NaN), the caller-facing
// functions fall back to a fixed literal instead of failing.
package value
