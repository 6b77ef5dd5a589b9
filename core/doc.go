// Package core contains the business logic for the Blockpress API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Block, document, panel and record models
// - ids: Document id and URL normalization, viewer links
// - blocktree: Bounded, concurrent block tree fetching and flattening
// - richtext: Inline node extraction from rich text spans
// - panel: Classification and parsing of callout panels
// - document: Document normalization service
// - projector: Collection row projection, filters and schema cache
// - collection: Content, event and form listing service
// - services: Link preview and cover color enrichment
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (source, cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	import (
//	    "blockpress-api/core/document"
//	    "blockpress-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Logger: myLogger, // implements interfaces.Logger
//	    Source: mySource, // implements interfaces.BlockSource
//	}
//
//	// Create service
//	documents := document.NewService(deps, document.Options{})
//
//	// Normalize a document
//	doc, err := documents.GetDocument(ctx, "https://example.notion.site/Page-3f1a2b3c4d5e6f708192a3b4c5d6e7f8")
package core
