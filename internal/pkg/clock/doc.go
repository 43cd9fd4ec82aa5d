// Package clock lets business code read time through an interface so tests
// can pin it with Fixed.
package clock
