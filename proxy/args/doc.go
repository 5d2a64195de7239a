// Package args models the named arguments of a REST call and encodes
// them into the three wire forms a call can carry: a URL query
// component, a form-urlencoded body, or a multipart/form-data body.
//
// # Building arguments
//
// A [Map] preserves insertion order and drops empty keys:
//
//	m := args.NewMap().
//		Set("name", args.String("widget")).
//		Set("count", args.Int(3)).
//		Set("tags", args.Strings("new", "blue")).
//		Set("since", args.Time(t)).
//		Set("photo", args.File("photo.jpg", args.Path("/tmp/photo.jpg")))
//
// Timestamps always encode as integer milliseconds since the Unix
// epoch. Null values are omitted from every encoded form. A list
// argument expands to one occurrence per element, in order.
//
// # Encoding
//
// [Query] and [Form] produce the identical percent-encoded key=value
// string; [Multipart] produces a boundary-delimited body in which file
// arguments become application/octet-stream parts. Generate boundaries
// with [Boundary]; never reuse one across bodies.
package args
