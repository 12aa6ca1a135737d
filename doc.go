/*Package winnow reduces per-term document counts into ranked, size-bounded
bucket sets -- the reduce side of a "top terms by document count" aggregation.

An upstream counting pass produces one (handle, count) pair per distinct term,
in dictionary order. Winnow filters those pairs against a minimum document
count, keeps the top shard-size entries by a configurable order using a
bounded priority structure, resolves the surviving handles back to their term
bytes through a forward-cursor catalog, and reports the total count that
overflowed the selection window.

Winnow is best suited as the reduction stage behind an exact counting engine:
it never computes counts itself and never approximates them.
*/
package winnow
