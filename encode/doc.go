// Package encode converts feature values to and from a JSON-transportable
// wire format, with type and shape checking against a FeatureSpec.
//
// Scalars travel inline, tensors either inline (floattensor) or as npy blobs,
// and binary media (images, npy) travel as base64 data URLs. The encoder set
// is closed: each supported value kind has exactly one handler, and new media
// types are added by registering one more encoder.
package encode
