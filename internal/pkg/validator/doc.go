// Package validator evaluates static constraint tables against string fields.
//
// A constraint table is plain data: each row names a field, the check to run
// (required, length bounds or a named format) and the message key rendered when
// the check fails. Tables are checked once by New; evaluation afterwards is a
// pure function of the input, so an Engine can be shared by any number of
// goroutines.
//
// Format checks delegate to go-playground/validator v10 and messages are
// rendered through go-playground/universal-translator.
package validator
