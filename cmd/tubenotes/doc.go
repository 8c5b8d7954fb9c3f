// Command tubenotes turns YouTube subtitle tracks into navigable,
// searchable notes. It downloads a video's subtitles, segments them into
// titled blocks, builds a table of contents, and optionally indexes the
// transcript for question answering and translates it into another
// language.
package main
