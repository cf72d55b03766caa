// Package chat maintains assistant conversations over streamed responses.
//
// A Conversation owns an ordered list of turns and accumulates streamed
// response fragments into a single growing assistant turn. One send may be
// in flight at a time; stream failures surface as a synthetic assistant
// turn rather than an error. Turns are session state and are not persisted.
package chat
