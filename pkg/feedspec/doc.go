// Package feedspec defines the marketplace attribute registry: the central
// catalog of feed attributes, their requirement levels, data types, default
// extraction mappings and conditional-requirement rules.
//
// The registry is immutable once built. Resolution and validation receive it
// by reference and never modify it, which keeps the engine safe for
// concurrent use across shops.
package feedspec
