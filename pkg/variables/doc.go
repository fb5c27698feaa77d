// Package variables resolves {{name}} placeholders in request text.
//
// A Registry holds an ordered list of providers, each tagged with whether
// its successful values may be cached for the rest of a pass. The Resolver
// scans text left to right and, for each placeholder, asks the providers in
// registry order whether they own the name. The first provider that claims
// it decides the outcome: a value is substituted, while an error or warning
// leaves the placeholder in the output as {{name}}. Unclaimed names are also
// left as they are. Resolution never fails as a whole.
//
// The standard registry order is system, request, file, environment. System
// values (timestamps, random numbers) are never cached; the others are.
//
// The Aggregator lists every name defined by the providers that implement
// Enumerator, for diagnostics such as "defined in both file and environment".
package variables
