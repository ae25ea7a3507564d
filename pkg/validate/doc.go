// Package validate checks resolved field sets against the attribute
// registry: one validator per data type, requirement enforcement including
// conditional rules, a cross-field pass, and a static validator for raw
// literal values.
//
// Validators never mutate the values they inspect. Findings are issues with
// error or warning severity; only errors block publication.
package validate
