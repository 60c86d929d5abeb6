// Package identity resolves the authenticated account for a request.
//
// The Resolver turns a bearer token into a live account record: decode the
// token, then look the subject up in the users store. There is no caching;
// every call re-verifies the signature and re-queries the store, so role
// changes and deletions take effect on the very next request.
//
// The resolved account travels through the request via context, using the
// same carrier pattern as the middleware that sets it.
package identity
