// Package api provides the HTTP API layer for the Blockpress service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
//   - server.go: Huma API configuration and setup
//   - handlers/: HTTP request handlers and domain error mapping
//   - middleware/: request logging with request IDs and per-IP rate limiting
//
// # Endpoints
//
//	GET  /documents?ref=            normalized document
//	GET  /collections/{id}/content  content catalog page
//	GET  /collections/{id}/events   event listing page
//	GET  /forms/{id}                form schema
//	POST /metadata                  link previews
//	GET  /healthz                   liveness
//
// The OpenAPI spec is available at /openapi.json and the interactive docs
// at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  120,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewDocumentHandler(documentService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. Invalid references and
// validation failures map to 400, missing documents to 404, trees deeper
// than the configured bound to 422, and document source failures to 502,
// 503 or 429 with a Retry-After hint.
package api
