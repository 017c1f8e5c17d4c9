// Package syntax defines the output model of the decoration engine.
// Invariants:
//   - Every TextSpan satisfies 0 <= Start <= End <= len(file text), in runes.
//   - Only Document and PreprocessorDirective nodes carry children; children
//     are ordered by source position and owned by their parent.
//   - A tree is never mutated after the engine returns it.
package syntax
