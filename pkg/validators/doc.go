// Package validators provides pluggable value checks that fields and widgets
// run after type conversion. The built-in length and range validators back
// the standard field constraints; EvenInteger, Palindrome, and Email
// establish the contract custom validators should follow.
package validators
