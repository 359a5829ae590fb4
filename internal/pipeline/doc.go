// Package pipeline runs marker processors over a sequence of documents.
//
// A host (the mdBook protocol or the standalone directory scanner) feeds
// Documents one at a time. Each Processor inspects the text, strips its
// marker when it should, and accumulates corpus-wide data that is written
// once through a sink.Sink when the pass finishes.
//
// Processors are built fresh for every run and hold no shared state.
package pipeline
