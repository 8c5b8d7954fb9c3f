// Package segment partitions a timed transcript into titled topical blocks.
//
// Two segmentation paths exist. SplitWithChapters prefers creator-declared
// chapter markers when any are available; Split falls back to a pause and
// size based heuristic over the raw cues. Both produce ordered Block values
// that always carry a non-empty title: title generation is a chain of total
// heuristics (keywords, first sentence, leading words) with a numbered
// section title as the final fallback, plus an optional network-backed
// strategy isolated behind the TitleService interface.
//
// Blocks round-trip through BlockMeta: persisting only the block bounds,
// title, and chapter flag is enough to rebuild the full block list later by
// filtering a reloaded transcript against the saved bounds.
package segment
