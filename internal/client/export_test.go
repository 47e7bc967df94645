// export_test.go exports private functions for white-box testing.
package client

// DecodeArgs exports decodeArgs for testing.
var DecodeArgs = decodeArgs
