// Package compare exposes dataset reconciliation over HTTP.
//
// The service loads two referenced datasets through core/source, applies the
// optional preparation pipeline to both and reconciles them with
// core/reconcile. Differences between the datasets are a normal 200
// response; only invalid requests and load failures are errors.
//
// # HTTP Endpoints
//
//   - POST /compare : Compare the datasets named in the JSON body.
//   - GET /compare?a=&b= : Compare with references and options in the query.
//   - GET /compare/inspect?ref= : Shape, schema and fingerprint of one dataset.
//   - GET /compare/datasets?prefix= : List dataset objects in the default bucket.
//
// Add format=text to a compare request for the plain-text transcript.
package compare
